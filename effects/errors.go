// SPDX-License-Identifier: EPL-2.0

package effects

import "errors"

// ErrNotPrepared is the panic value of Process before Prepare in otodebug builds.
var ErrNotPrepared = errors.New("effects: Process called before Prepare")
