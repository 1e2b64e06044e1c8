// SPDX-License-Identifier: EPL-2.0

// Package formats bundles the decoders under formats/ into one registry.
//
//	reg := formats.NewRegistry()
//	buf, err := audio.Load(reg, "set/opener.flac", 44100)
//
// Registered extensions: aif, aiff, flac, mp3, ogg, wav.
package formats
