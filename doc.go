// SPDX-License-Identifier: EPL-2.0

// Package otodecks is a dual-deck mixing engine.
//
// An Engine owns two decks, a one-shot sampler, a crossfader, the master
// mixer and a spectrum analyzer. Its Process method is the audio callback:
// it never blocks (beyond the sampler's short critical section) and never
// allocates, so it can be driven directly by an audio device.
//
// # Signal Flow
//
//	deck A: transport -> chorus -> delay -> reverb -> compressor --\
//	deck B: transport -> chorus -> delay -> reverb -> compressor ---+-> mixer -> out
//	sampler voices ------------------------------------------------/      |
//	                                              spectrum analyzer <-----/
//
// Deck A and deck B are weighted by the crossfader; the sampler is summed at
// unity gain.
//
// # Quick Start
//
//	e := otodecks.New(otodecks.Options{SamplesDir: dir})
//	if err := e.DeckA().Load("a.mp3"); err != nil {
//		return err
//	}
//	e.DeckA().Transport().Start()
//	e.Crossfader().Set(0)
//	e.Start(ctx)
//
//	// audio goroutine
//	e.Process(buf)
//
// The output package connects an Engine to the system audio device.
//
// # Packages
//
//   - transport: resampling playback with seek, speed and gain
//   - effects: chorus, delay, reverb and compressor chain
//   - deck: a transport feeding its effects chain
//   - sampler: 16-voice one-shot sample player
//   - mixer: crossfader laws and the master mixer
//   - spectrum: FFT frequency bars
//   - formats: decoders for WAV, MP3, Ogg Vorbis, FLAC and AIFF
package otodecks
