// SPDX-License-Identifier: EPL-2.0

// Package transport implements the playback transport of one deck.
//
// A track is decoded completely on the calling goroutine by LoadSource,
// converted to the engine sample rate, and published with an atomic pointer
// swap. Read, called from the audio goroutine, renders it with cubic
// interpolation at the current speed ratio and gain:
//
//	t := transport.New(44100, 2, formats.NewRegistry())
//	if err := t.LoadSource("crate/intro.mp3"); err != nil {
//	    return err // errors.Is(err, audio.ErrDecode)
//	}
//	t.SetSpeed(1.04)
//	t.Start()
//
//	// audio goroutine
//	t.Read(block)
//
// Gain changes ramp across the next block. Stop takes effect at once; the
// block that was playing fades out over DeclickFrames frames. A track loaded
// over a playing deck stops it and sends EventStopped before EventLoaded.
// Seeks are handed to the audio goroutine through an
// atomic value and are visible to PositionRelative straight away.
//
// Subscribe returns a Listener receiving EventLoaded, EventStarted and
// EventStopped from control goroutines only; reaching the end of a track is
// not reported as an event, IsPlaying simply turns false.
package transport
