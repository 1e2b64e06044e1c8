// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

// ErrNotFlacFile wraps every failure to parse a FLAC stream header.
var ErrNotFlacFile = errors.New("not a FLAC file")
