// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always yields 16-bit stereo at the file's sample rate, so every
// Source produced here reports two channels; mono files come out duplicated
// on both. Samples are scaled to float32 in [-1, 1].
//
//	f, _ := os.Open("loop.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//
// Most tracks run at 44.1 or 48 kHz; audio.Load converts them to the engine
// rate with the cubic resampler.
package mp3
