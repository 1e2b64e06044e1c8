// SPDX-License-Identifier: EPL-2.0

package effects

import "math"

const (
	// chorusSwingMs is the modulation swing at depth 1, either side of the centre delay.
	chorusSwingMs = 10.0
	chorusMaxMs   = 30.0
)

// Chorus is a modulated delay per channel with a little feedback. The LFO
// of every odd channel runs a quarter cycle ahead of the even ones.
type Chorus struct {
	sampleRate float64
	lines      []*DelayLine
	phase      float64

	rate     float64 // Hz
	depth    float64
	centreMs float64
	feedback float32
	mix      float32
}

func NewChorus(sampleRate, channels int) *Chorus {
	c := &Chorus{sampleRate: float64(sampleRate)}
	maxDelay := int(math.Ceil(chorusMaxMs * 0.001 * c.sampleRate))
	for range max(channels, 1) {
		c.lines = append(c.lines, NewDelayLine(maxDelay))
	}
	c.Set(0)
	return c
}

// Set maps amount in [0, 1] to rate 0.15..1.10 Hz, depth 0.12..0.50,
// centre delay 8..18 ms, feedback 0..0.08 and mix 0.08..0.43.
func (c *Chorus) Set(amount float64) {
	c.rate = 0.15 + 0.95*amount
	c.depth = 0.12 + 0.38*amount
	c.centreMs = 8 + 10*amount
	c.feedback = float32(0.08 * amount)
	c.mix = float32(0.08 + 0.35*amount)
}

func (c *Chorus) Mix() float32 { return c.mix }

// Process runs the chorus over interleaved buf in place.
func (c *Chorus) Process(buf []float32, channels int) {
	if channels < 1 {
		return
	}
	active := min(channels, len(c.lines))
	frames := len(buf) / channels

	inc := 2 * math.Pi * c.rate / c.sampleRate
	centre := c.centreMs * 0.001 * c.sampleRate
	swing := c.depth * chorusSwingMs * 0.001 * c.sampleRate
	dry := 1 - c.mix

	for f := range frames {
		frame := buf[f*channels : f*channels+active]
		for ch, x := range frame {
			phase := c.phase
			if ch%2 == 1 {
				phase += math.Pi / 2
			}
			delay := centre + swing*math.Sin(phase)

			line := c.lines[ch]
			wet := line.ReadFrac(delay)
			line.Write(x + wet*c.feedback)
			frame[ch] = x*dry + wet*c.mix
		}

		c.phase += inc
		if c.phase >= 2*math.Pi {
			c.phase -= 2 * math.Pi
		}
	}
}

func (c *Chorus) Reset() {
	for _, l := range c.lines {
		l.Reset()
	}
	c.phase = 0
}
