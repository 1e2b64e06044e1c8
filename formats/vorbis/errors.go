// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNoChannels is returned for a stream header announcing zero channels.
var ErrNoChannels = errors.New("vorbis stream has no channels")
