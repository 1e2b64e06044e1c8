// SPDX-License-Identifier: EPL-2.0

// Package deck pairs a transport with an effects chain. A Deck satisfies
// mixer.Input, so the master mixer pulls it like any other source:
//
//	d := deck.New("A", 44100, 512, 2, formats.NewRegistry())
//	if err := d.Load("track.mp3"); err != nil {
//		return err
//	}
//	d.Transport().Start()
//	m.Add(d, xf.GainA)
package deck
