// SPDX-License-Identifier: EPL-2.0

package effects

// Freeverb tunings at 44.1 kHz.
var (
	combTunings    = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTunings = [4]int{556, 441, 341, 225}
)

const (
	stereoSpread = 23
	fixedGain    = 0.015
	scaleWet     = 3
	scaleDamp    = 0.4
	scaleRoom    = 0.28
	offsetRoom   = 0.7
	allpassFeed  = 0.5
)

type comb struct {
	buf  []float32
	idx  int
	last float32
}

func (c *comb) process(in, feedback, damp float32) float32 {
	out := c.buf[c.idx]
	c.last = out*(1-damp) + c.last*damp
	c.buf[c.idx] = in + c.last*feedback
	c.idx++
	if c.idx == len(c.buf) {
		c.idx = 0
	}
	return out
}

type allpass struct {
	buf []float32
	idx int
}

func (a *allpass) process(in float32) float32 {
	buffered := a.buf[a.idx]
	a.buf[a.idx] = in + buffered*allpassFeed
	a.idx++
	if a.idx == len(a.buf) {
		a.idx = 0
	}
	return buffered - in
}

type reverbChannel struct {
	combs     [8]comb
	allpasses [4]allpass
}

func newReverbChannel(sampleRate, spread int) reverbChannel {
	scale := float64(sampleRate) / 44100
	var rc reverbChannel
	for i, t := range combTunings {
		rc.combs[i].buf = make([]float32, max(int(float64(t+spread)*scale), 1))
	}
	for i, t := range allpassTunings {
		rc.allpasses[i].buf = make([]float32, max(int(float64(t+spread)*scale), 1))
	}
	return rc
}

func (rc *reverbChannel) process(in, feedback, damp float32) float32 {
	var out float32
	for i := range rc.combs {
		out += rc.combs[i].process(in, feedback, damp)
	}
	for i := range rc.allpasses {
		out = rc.allpasses[i].process(out)
	}
	return out
}

func (rc *reverbChannel) reset() {
	for i := range rc.combs {
		clear(rc.combs[i].buf)
		rc.combs[i].idx, rc.combs[i].last = 0, 0
	}
	for i := range rc.allpasses {
		clear(rc.allpasses[i].buf)
		rc.allpasses[i].idx = 0
	}
}

// Reverb is a stereo Freeverb at full width. The first two channels are
// processed; a mono buffer runs through the left network only. Dry signal
// passes at unity.
type Reverb struct {
	left, right reverbChannel

	room    float64
	damping float64
	wet     float64
	dry     float32
}

func NewReverb(sampleRate int) *Reverb {
	r := &Reverb{
		left:  newReverbChannel(sampleRate, 0),
		right: newReverbChannel(sampleRate, stereoSpread),
	}
	r.Set(0)
	return r
}

// Set maps amount in (0, 1] to room 0.60..1.00, damping 0.10..0.40 and wet
// 0.50..1.00. Amount 0 turns the wet level off.
func (r *Reverb) Set(amount float64) {
	r.room = 0.60 + 0.40*amount
	r.damping = 0.10 + 0.30*amount
	r.wet = 0.50 + 0.50*amount
	if amount <= 0 {
		r.wet = 0
	}
	r.dry = 1
}

// Wet is the wet level before scaling; zero means the reverb is bypassed.
func (r *Reverb) Wet() float64 { return r.wet }

func (r *Reverb) Process(buf []float32, channels int) {
	if channels < 1 {
		return
	}
	feedback := float32(r.room*scaleRoom + offsetRoom)
	damp := float32(r.damping * scaleDamp)
	wet := float32(r.wet * scaleWet)

	frames := len(buf) / channels
	if channels == 1 {
		for i, x := range buf[:frames] {
			buf[i] = x*r.dry + r.left.process(x*fixedGain, feedback, damp)*wet
		}
		return
	}

	for f := range frames {
		i := f * channels
		l, rr := buf[i], buf[i+1]
		in := (l + rr) * fixedGain
		buf[i] = l*r.dry + r.left.process(in, feedback, damp)*wet
		buf[i+1] = rr*r.dry + r.right.process(in, feedback, damp)*wet
	}
}

func (r *Reverb) Reset() {
	r.left.reset()
	r.right.reset()
}
