// SPDX-License-Identifier: EPL-2.0

// Package mixer provides the crossfader and the master mixer.
//
// Crossfader holds the fader position as an atomic so the audio goroutine
// can read it without locking. With the default EqualPower law the deck
// gains satisfy a^2 + b^2 == 1 at every position; ConstantGain instead keeps
// a + b == 1. Both ends snap to exact (1, 0) and (0, 1).
//
// Mixer sums registered inputs with per-input gains polled once per call:
//
//	xf := mixer.NewCrossfader(mixer.EqualPower)
//	m := mixer.New(512, 2)
//	m.Add(deckA, xf.GainA)
//	m.Add(deckB, xf.GainB)
//	m.Add(mixer.InputFunc(func(dst []float32) int { return smp.Mix(dst, 2) }), nil)
//
//	// audio goroutine
//	m.Mix(out)
//
// Every input is rendered into its own scratch buffer, allocated by Add, so
// Mix itself does not allocate.
package mixer
