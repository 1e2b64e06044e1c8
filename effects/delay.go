// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"

	"github.com/ik5/otodecks/audio"
)

const maxDelaySeconds = 2.0

// Delay is a mono feedback echo. The input is folded to mono and the echo
// is added back to every channel.
type Delay struct {
	sampleRate float64
	line       *DelayLine
	mono       []float32

	delay    float64 // samples
	feedback float32
	mix      float32
}

func NewDelay(sampleRate, blockSize int) *Delay {
	d := &Delay{
		sampleRate: float64(sampleRate),
		line:       NewDelayLine(int(math.Ceil(maxDelaySeconds * float64(sampleRate)))),
		mono:       make([]float32, max(blockSize, 1)),
	}
	d.Set(0)
	return d
}

// Set maps amount in [0, 1] to time 90..450 ms, feedback 0..0.45 and mix 0..0.55.
func (d *Delay) Set(amount float64) {
	d.delay = (90 + 360*amount) * 0.001 * d.sampleRate
	d.feedback = float32(0.45 * amount)
	d.mix = float32(0.55 * amount)
}

func (d *Delay) Mix() float32 { return d.mix }

// DelaySamples is the current echo time in samples.
func (d *Delay) DelaySamples() float64 { return d.delay }

func (d *Delay) Process(buf []float32, channels int) {
	channels = max(channels, 1)
	dry := 1 - d.mix

	for len(buf) >= channels {
		frames := min(len(buf)/channels, len(d.mono))
		chunk := buf[:frames*channels]
		audio.Downmix(d.mono, chunk, channels)

		for f, in := range d.mono[:frames] {
			echo := d.line.ReadFrac(d.delay)
			d.line.Write(in + echo*d.feedback)

			frame := chunk[f*channels : (f+1)*channels]
			for ch, x := range frame {
				frame[ch] = x*dry + echo*d.mix
			}
		}
		buf = buf[len(chunk):]
	}
}

func (d *Delay) Reset() { d.line.Reset() }
