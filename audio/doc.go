// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding and sample-rate primitives used by the
// decks and the sampler.
//
// This package contains the building blocks below the real-time path:
//   - Source interface for streamed decoder output
//   - Registry mapping file extensions to decoders
//   - Resampler for sample rate conversion
//   - MonoMixer and Downmix for channel folding
//   - Buffer, fully decoded PCM held in memory
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Every format decoder returns a Source. Sources are pulled from control
// goroutines only; nothing in this package is read from the audio callback
// except Buffer and Downmix, which never allocate or block.
//
// # Loading
//
// Load opens a file, picks the decoder by extension, converts the stream to
// the engine sample rate and keeps the result in a Buffer:
//
//	reg := formats.NewRegistry()
//	buf, err := audio.Load(reg, "track.mp3", 44100)
//	if errors.Is(err, audio.ErrDecode) {
//	    // missing, unsupported or corrupt file
//	}
//
// # Resampling
//
// The Resampler changes the sample rate using Catmull-Rom cubic
// interpolation, with a one-pole low-pass when downsampling:
//
//	resampler := audio.NewResampler(source, 48000)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// # Sample Format
//
// Audio samples are float32 in the range [-1.0, 1.0], interleaved by frame.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. Open and Load
// wrap every failure in a *DecodeError, which matches ErrDecode through
// errors.Is and also unwraps to the underlying cause.
package audio
