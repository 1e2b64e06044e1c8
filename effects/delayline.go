// SPDX-License-Identifier: EPL-2.0

package effects

import "github.com/ik5/otodecks/utils"

// DelayLine is a circular buffer of past samples. In each tick Read must
// come before Write: Read(d) then returns the sample written exactly d ticks
// earlier.
type DelayLine struct {
	buf []float32
	w   int
}

// NewDelayLine allocates room for delays of up to maxDelay samples.
func NewDelayLine(maxDelay int) *DelayLine {
	return &DelayLine{buf: make([]float32, max(maxDelay, 1)+1)}
}

// MaxDelay is the longest delay Read can return, in samples.
func (d *DelayLine) MaxDelay() int { return len(d.buf) - 1 }

func (d *DelayLine) Write(x float32) {
	d.buf[d.w] = x
	d.w++
	if d.w == len(d.buf) {
		d.w = 0
	}
}

// Read returns the sample written delay ticks ago, delay clamped to
// [1, MaxDelay].
func (d *DelayLine) Read(delay int) float32 {
	delay = min(max(delay, 1), len(d.buf)-1)
	i := d.w - delay
	if i < 0 {
		i += len(d.buf)
	}
	return d.buf[i]
}

// ReadFrac reads a fractional delay with linear interpolation.
func (d *DelayLine) ReadFrac(delay float64) float32 {
	delay = min(max(delay, 1), float64(len(d.buf)-1))
	whole := int(delay)
	frac := float32(delay - float64(whole))
	a := d.Read(whole)
	if frac == 0 {
		return a
	}
	b := d.Read(whole + 1)
	return utils.Lerp(a, b, frac)
}

func (d *DelayLine) Reset() {
	clear(d.buf)
	d.w = 0
}
