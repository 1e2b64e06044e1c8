// SPDX-License-Identifier: EPL-2.0

// Package effects implements the per-deck effects chain.
//
// Four effects run in a fixed order, each driven by a single amount knob in
// [0, 1]:
//
//	chorus     rate 0.15..1.10 Hz, depth 0.12..0.50, centre 8..18 ms,
//	           feedback 0..0.08, mix 0.08..0.43
//	delay      time 90..450 ms, feedback 0..0.45, mix 0..0.55 (mono line)
//	reverb     Freeverb, room 0.60..1.00, damping 0.10..0.40, wet 0.50..1.00,
//	           dry 1; amount 0 is fully dry
//	compressor threshold -6..-30 dB, ratio 1..10, attack 5 ms, release 50 ms
//
// Knobs are atomics and may be turned from any goroutine; the audio goroutine
// picks them up at the start of the next block and recomputes coefficients
// only for knobs that moved. Delay and reverb are skipped while their wet
// mix is zero. The chorus keeps running at amount 0 unless the chain is built
// with BypassAtZero.
//
//	chain := effects.NewChain()
//	chain.Prepare(44100, 512, 2)
//	chain.SetReverbAmount(0.4)
//
//	// audio goroutine
//	chain.Process(block)
//
// Calling Process before Prepare leaves the buffer untouched; binaries built
// with -tags otodebug panic with ErrNotPrepared instead.
//
// DelayLine is exported for reuse: Read(d) issued before Write in the same
// tick returns exactly the sample written d ticks earlier.
package effects
