// SPDX-License-Identifier: EPL-2.0

// Package spectrum derives frequency bars from the master output.
//
// The audio goroutine pushes every mixed block with PushAudioBlock, which
// averages it to mono into a lock-free ring twice the FFT size. A timer
// goroutine calls Tick (Run does so at a fixed rate, 60 Hz by default):
// bars fall linearly at the decay rate, then, if new audio arrived, the
// latest window is Hann-weighted, transformed with go-dsp's real FFT, and
// the magnitudes are grouped onto log-spaced bars:
//
//	i0    = floor(10^(b/bars) / 10 * N/2)
//	count = clamp(i1 - i0, 1, N/2 - 1)
//	level = clamp(log10(1 + 8*avg), 0, 1)
//
// A bar only jumps up to a new level; it never falls faster than the decay.
//
//	an := spectrum.NewAnalyzer(spectrum.DefaultFFTOrder, 16)
//	go an.Run(ctx, 60)
//	levels := an.Bars(nil)
package spectrum
