// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"github.com/ik5/otodecks/utils"
	uatomic "go.uber.org/atomic"
)

const (
	knobChorus = iota
	knobDelay
	knobReverb
	knobComp
	numKnobs
)

// Option configures a Chain.
type Option func(*Chain)

// BypassAtZero skips the chorus entirely while its amount is 0 instead of
// running it at its minimum mix.
func BypassAtZero() Option {
	return func(c *Chain) { c.bypassAtZero = true }
}

// Chain runs chorus, delay, reverb and compressor in that order over one
// deck's blocks.
//
// The amount setters are safe from any goroutine. Prepare, Reset and
// Process belong to the audio goroutine, or to setup before playback starts.
type Chain struct {
	knobs    [numKnobs]uatomic.Float64
	resetReq uatomic.Bool

	bypassAtZero bool

	// audio goroutine only
	prepared bool
	channels int
	applied  [numKnobs]float64
	chorus   *Chorus
	delay    *Delay
	reverb   *Reverb
	comp     *Compressor
}

func NewChain(opts ...Option) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prepare allocates every effect for the given format and clears all state.
// It must be called before Process and again whenever the format changes.
func (c *Chain) Prepare(sampleRate, blockSize, channels int) {
	channels = max(channels, 1)
	c.channels = channels
	c.chorus = NewChorus(sampleRate, channels)
	c.delay = NewDelay(sampleRate, blockSize)
	c.reverb = NewReverb(sampleRate)
	c.comp = NewCompressor(sampleRate, channels)
	for i := range c.applied {
		c.applied[i] = -1
	}
	c.resetReq.Store(false)
	c.prepared = true
}

func (c *Chain) Prepared() bool { return c.prepared }

func (c *Chain) SetChorusAmount(a float64)      { c.knobs[knobChorus].Store(clampAmount(a)) }
func (c *Chain) SetDelayAmount(a float64)       { c.knobs[knobDelay].Store(clampAmount(a)) }
func (c *Chain) SetReverbAmount(a float64)      { c.knobs[knobReverb].Store(clampAmount(a)) }
func (c *Chain) SetCompressionAmount(a float64) { c.knobs[knobComp].Store(clampAmount(a)) }

func (c *Chain) ChorusAmount() float64      { return c.knobs[knobChorus].Load() }
func (c *Chain) DelayAmount() float64       { return c.knobs[knobDelay].Load() }
func (c *Chain) ReverbAmount() float64      { return c.knobs[knobReverb].Load() }
func (c *Chain) CompressionAmount() float64 { return c.knobs[knobComp].Load() }

func clampAmount(a float64) float64 { return utils.Clamp01(a) }

// RequestReset asks the audio goroutine to clear every effect's state at
// the start of the next block.
func (c *Chain) RequestReset() { c.resetReq.Store(true) }

// Reset clears delay lines, reverb tanks, LFO phase and envelopes.
func (c *Chain) Reset() {
	if !c.prepared {
		return
	}
	c.chorus.Reset()
	c.delay.Reset()
	c.reverb.Reset()
	c.comp.Reset()
}

// Process applies the chain to interleaved buf in place. Trailing samples
// that do not form a whole frame are left untouched. Without a prior
// Prepare the buffer is left as is.
func (c *Chain) Process(buf []float32) {
	if !c.prepared {
		assertPrepared()
		return
	}
	if c.resetReq.CompareAndSwap(true, false) {
		c.Reset()
	}
	c.update()

	buf = buf[:len(buf)-len(buf)%c.channels]

	if !c.bypassAtZero || c.applied[knobChorus] > 0 {
		c.chorus.Process(buf, c.channels)
	}
	if c.delay.Mix() > 0 {
		c.delay.Process(buf, c.channels)
	}
	if c.reverb.Wet() > 0 {
		c.reverb.Process(buf, c.channels)
	}
	c.comp.Process(buf, c.channels)
}

// update recomputes derived coefficients for knobs that moved.
func (c *Chain) update() {
	for i := range c.knobs {
		v := c.knobs[i].Load()
		if v == c.applied[i] {
			continue
		}
		c.applied[i] = v
		switch i {
		case knobChorus:
			c.chorus.Set(v)
		case knobDelay:
			c.delay.Set(v)
		case knobReverb:
			c.reverb.Set(v)
		case knobComp:
			c.comp.Set(v)
		}
	}
}
