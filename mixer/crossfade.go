// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/otodecks/utils"
	uatomic "go.uber.org/atomic"
)

// snapEpsilon is how close to an end the fader must be to return exact gains.
const snapEpsilon = 1e-6

// Law is a crossfade curve.
type Law int32

const (
	// EqualPower keeps a^2 + b^2 == 1: a = cos(x*pi/2), b = sin(x*pi/2).
	EqualPower Law = iota
	// ConstantGain keeps a + b == 1: a = cos^2(x*pi/2), b = sin^2(x*pi/2).
	ConstantGain
)

func (l Law) String() string {
	switch l {
	case EqualPower:
		return "equal-power"
	case ConstantGain:
		return "constant-gain"
	default:
		return fmt.Sprintf("Law(%d)", int32(l))
	}
}

// ParseLaw accepts "equal-power" or "constant-gain".
func ParseLaw(s string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal-power", "":
		return EqualPower, nil
	case "constant-gain":
		return ConstantGain, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLaw, s)
	}
}

// Gains returns the deck A and deck B gains for fader position x in [0, 1].
// Positions within 1e-6 of either end snap to exactly (1, 0) or (0, 1).
func Gains(law Law, x float64) (a, b float32) {
	switch {
	case x <= snapEpsilon:
		return 1, 0
	case x >= 1-snapEpsilon:
		return 0, 1
	}

	theta := x * math.Pi / 2
	ga, gb := math.Cos(theta), math.Sin(theta)
	if law == ConstantGain {
		ga, gb = ga*ga, gb*gb
	}
	return float32(ga), float32(gb)
}

// Crossfader holds the fader position shared between the control and audio
// goroutines.
type Crossfader struct {
	x   uatomic.Float64
	law uatomic.Int32

	mu        sync.Mutex
	listeners []func(x float64)
}

// NewCrossfader returns a centred crossfader.
func NewCrossfader(law Law) *Crossfader {
	c := &Crossfader{}
	c.x.Store(0.5)
	c.law.Store(int32(law))
	return c
}

// Set moves the fader. x is clamped to [0, 1]; NaN centres it. Change
// callbacks run synchronously on the calling goroutine.
func (c *Crossfader) Set(x float64) {
	if math.IsNaN(x) {
		x = 0.5
	}
	x = utils.Clamp01(x)
	if c.x.Swap(x) == x {
		return
	}

	c.mu.Lock()
	listeners := c.listeners
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(x)
	}
}

func (c *Crossfader) Position() float64 { return c.x.Load() }

func (c *Crossfader) Law() Law       { return Law(c.law.Load()) }
func (c *Crossfader) SetLaw(law Law) { c.law.Store(int32(law)) }

// Gains evaluates the current law at the current position.
func (c *Crossfader) Gains() (a, b float32) {
	return Gains(c.Law(), c.x.Load())
}

// GainA and GainB adapt the crossfader to mixer inputs.
func (c *Crossfader) GainA() float32 { a, _ := c.Gains(); return a }
func (c *Crossfader) GainB() float32 { _, b := c.Gains(); return b }

// OnChange registers fn to be called with the new position after every
// change made through Set.
func (c *Crossfader) OnChange(fn func(x float64)) {
	c.mu.Lock()
	// clipped so a snapshot held by Set is never written to
	c.listeners = append(slices.Clip(c.listeners), fn)
	c.mu.Unlock()
}
