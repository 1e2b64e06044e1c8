// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"

	"github.com/ik5/otodecks/utils"
)

const (
	compAttackMs  = 5.0
	compReleaseMs = 50.0
)

// Compressor is a feed-forward peak compressor with a per-channel envelope.
type Compressor struct {
	sampleRate float64
	env        []float32

	thresholdDB float64
	ratio       float64

	threshold    float32
	thresholdInv float32
	exponent     float32 // 1/ratio - 1
	attack       float32
	release      float32
}

func NewCompressor(sampleRate, channels int) *Compressor {
	c := &Compressor{
		sampleRate: float64(sampleRate),
		env:        make([]float32, max(channels, 1)),
	}
	c.attack = ballistics(c.sampleRate, compAttackMs)
	c.release = ballistics(c.sampleRate, compReleaseMs)
	c.Set(0)
	return c
}

func ballistics(sampleRate, ms float64) float32 {
	return float32(math.Exp(-2 * math.Pi * 1000 / (sampleRate * ms)))
}

// Set maps amount in [0, 1] to threshold -6..-30 dB and ratio 1..10.
func (c *Compressor) Set(amount float64) {
	c.thresholdDB = -6 - 24*amount
	c.ratio = 1 + 9*amount
	c.threshold = float32(utils.DBToGain(c.thresholdDB))
	c.thresholdInv = 1 / c.threshold
	c.exponent = float32(1/c.ratio - 1)
}

func (c *Compressor) ThresholdDB() float64 { return c.thresholdDB }
func (c *Compressor) Ratio() float64       { return c.ratio }

func (c *Compressor) Process(buf []float32, channels int) {
	if channels < 1 {
		return
	}
	active := min(channels, len(c.env))
	frames := len(buf) / channels

	for f := range frames {
		frame := buf[f*channels : f*channels+active]
		for ch, x := range frame {
			level := float32(math.Abs(float64(x)))
			cte := c.release
			if level > c.env[ch] {
				cte = c.attack
			}
			env := level + cte*(c.env[ch]-level)
			c.env[ch] = env

			if env < c.threshold || c.exponent == 0 {
				continue
			}
			gain := float32(math.Pow(float64(env*c.thresholdInv), float64(c.exponent)))
			frame[ch] = x * gain
		}
	}
}

func (c *Compressor) Reset() { clear(c.env) }
