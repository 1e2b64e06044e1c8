// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var ErrDeviceUnavailable = errors.New("audio device unavailable")
