// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the pieces shared by the decoders built on go-audio
// (WAV and AIFF): a Source that scales integer PCM of 8, 16, 24 or 32 bits
// into float32 in [-1, 1], and a ReadSeeker helper for non-seekable input.
package pcm
