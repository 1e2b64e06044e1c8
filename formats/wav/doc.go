// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files and writes 16-bit PCM WAV files.
//
// Decoding is done by github.com/go-audio/wav. Integer PCM of 8, 16, 24 and
// 32 bits is accepted, mono or multi-channel, at any sample rate; 8-bit WAV
// data is unsigned and is re-centred around zero. Samples come out as
// float32 in [-1, 1]:
//
//	f, _ := os.Open("kick.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Input that cannot seek is buffered in memory first.
//
// WriteWAV16 writes a canonical 44-byte header followed by interleaved
// little-endian samples, in 8 KiB chunks. The tone subcommand uses it to
// author one-shot samples:
//
//	err := wav.WriteWAV16(f, 44100, 2, pcm16)
package wav
