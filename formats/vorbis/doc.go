// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The library already produces interleaved float32 in [-1, 1], so samples
// are read straight into the caller's buffer, trimmed to whole frames.
// Channel count and sample rate come from the stream header.
//
//	f, _ := os.Open("pad.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an Ogg stream, or not Vorbis
//	}
//
// Register it for the "ogg" extension:
//
//	reg.Register("ogg", vorbis.Decoder{})
package vorbis
