// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

// ErrUnknownLaw is returned by ParseLaw for an unrecognised curve name.
var ErrUnknownLaw = errors.New("unknown crossfade law")
