// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecode matches every *DecodeError through errors.Is.
	ErrDecode = errors.New("decode failed")

	// ErrUnsupportedFormat is returned when no decoder is registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoStream is returned when a decoder produced no usable audio stream.
	ErrNoStream = errors.New("no decodable audio stream")

	// ErrEmptySource is returned when a stream decoded to zero frames.
	ErrEmptySource = errors.New("audio stream has no samples")
)

// DecodeError reports a file that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return "decode " + e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
