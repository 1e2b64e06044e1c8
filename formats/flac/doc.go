// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files through github.com/gopxl/beep/v2/flac.
//
// beep streams [2]float64 frames; the Source narrows them to interleaved
// float32, keeping one channel for mono files and two otherwise. Files with
// more than two channels are folded by beep to stereo.
//
//	reg.Register("flac", flac.Decoder{})
package flac
