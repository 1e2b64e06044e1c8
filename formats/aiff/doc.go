// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Signed integer PCM of 8, 16, 24 and 32 bits is converted to float32 in
// [-1, 1]. The go-audio decoder needs an io.ReadSeeker; other readers are
// buffered in memory first.
//
//	reg.Register("aiff", aiff.Decoder{})
//	reg.Register("aif", aiff.Decoder{})
//
// Errors:
//   - ErrNotAiffFile: no FORM/AIFF header
//   - ErrUnsupportedBitDepth: sample size the converter does not handle
//   - ErrUnsupportedAiffLayout: missing or invalid COMM chunk
package aiff
