// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"context"
	"math"
	"math/cmplx"
	"sync"
	"time"

	"github.com/ik5/otodecks/utils"
	"github.com/madelynnblue/go-dsp/fft"
	"github.com/madelynnblue/go-dsp/window"
)

const (
	DefaultFFTOrder = 10
	DefaultBars     = 16
	DefaultDecay    = 3.0
	DefaultRateHz   = 60

	MinBars  = 8
	MaxBars  = 64
	minDecay = 0.1
	maxDecay = 30.0

	minOrder = 6
	maxOrder = 15
)

// Analyzer turns the master output into decaying log-spaced frequency bars.
//
// PushAudioBlock is called from the audio goroutine and only writes the
// ring. Tick runs on a timer goroutine; the other methods may be called from
// anywhere.
type Analyzer struct {
	fftSize int
	ring    *Ring

	// timer goroutine only
	lastFill uint64
	frame    []float32
	windowed []float64
	hann     []float64
	mag      []float64

	mu    sync.Mutex
	bars  []float32
	decay float64
}

// NewAnalyzer builds an analyzer with an FFT of 1<<fftOrder points and
// numBars bars, clamped to [8, 64].
func NewAnalyzer(fftOrder, numBars int) *Analyzer {
	fftOrder = utils.ClampInt(fftOrder, minOrder, maxOrder)
	size := 1 << fftOrder

	return &Analyzer{
		fftSize:  size,
		ring:     NewRing(2 * size),
		frame:    make([]float32, size),
		windowed: make([]float64, size),
		hann:     window.Hann(size),
		mag:      make([]float64, size/2),
		bars:     make([]float32, utils.ClampInt(numBars, MinBars, MaxBars)),
		decay:    DefaultDecay,
	}
}

func (a *Analyzer) FFTSize() int { return a.fftSize }

// PushAudioBlock feeds numFrames interleaved frames of buf, starting at
// frame start, to the analyzer as mono. It never blocks or allocates.
func (a *Analyzer) PushAudioBlock(buf []float32, channels, start, numFrames int) {
	a.ring.PushMono(buf, channels, start, numFrames)
}

// Tick decays every bar by decay*dt and, when new audio arrived since the
// last Tick, raises bars to the levels of the most recent FFT window.
func (a *Analyzer) Tick(dt time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d := float32(a.decay * dt.Seconds())
	for i, v := range a.bars {
		a.bars[i] = max(0, v-d)
	}

	fill, ok := a.ring.Latest(a.frame)
	if fill == a.lastFill || !ok {
		a.lastFill = fill
		return
	}
	a.lastFill = fill

	a.analyze()
}

// analyze runs the windowed FFT on a.frame and maps magnitudes onto the bars.
func (a *Analyzer) analyze() {
	for i, s := range a.frame {
		a.windowed[i] = float64(s) * a.hann[i]
	}
	spectrum := fft.FFTReal(a.windowed)

	nSpec := a.fftSize / 2
	for i := range a.mag {
		a.mag[i] = cmplx.Abs(spectrum[i])
	}

	bars := len(a.bars)
	for b := range bars {
		i0 := binIndex(b, bars, nSpec)
		i1 := binIndex(b+1, bars, nSpec)
		count := utils.ClampInt(i1-i0, 1, nSpec-1)

		var sum float64
		for i := range count {
			sum += a.mag[utils.ClampInt(i0+i, 0, nSpec-1)]
		}
		avg := sum / float64(count)
		level := float32(utils.Clamp(math.Log10(1+8*avg), 0, 1))

		a.bars[b] = max(a.bars[b], level)
	}
}

// binIndex places bar boundary b of bars on a log axis covering the top
// decade of nSpec bins.
func binIndex(b, bars, nSpec int) int {
	t := float64(b) / float64(bars)
	return int(math.Floor(math.Pow(10, t) / 10 * float64(nSpec)))
}

// Run ticks the analyzer hz times per second until ctx is done.
func (a *Analyzer) Run(ctx context.Context, hz int) {
	if hz <= 0 {
		hz = DefaultRateHz
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.Tick(now.Sub(last))
			last = now
		}
	}
}

// SetNumBars changes the bar count, clamped to [8, 64], and zeroes every bar.
func (a *Analyzer) SetNumBars(n int) {
	n = utils.ClampInt(n, MinBars, MaxBars)
	a.mu.Lock()
	a.bars = make([]float32, n)
	a.mu.Unlock()
}

func (a *Analyzer) NumBars() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.bars)
}

// SetDecay sets how fast bars fall, in full-scale units per second, clamped
// to [0.1, 30].
func (a *Analyzer) SetDecay(perSec float64) {
	if math.IsNaN(perSec) {
		return
	}
	a.mu.Lock()
	a.decay = utils.Clamp(perSec, minDecay, maxDecay)
	a.mu.Unlock()
}

func (a *Analyzer) Decay() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.decay
}

// Bars appends the current bar levels, each in [0, 1], to dst[:0].
func (a *Analyzer) Bars(dst []float32) []float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(dst[:0], a.bars...)
}

// Reset zeroes the bars and discards buffered audio.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	clear(a.bars)
	a.ring.Reset()
	a.lastFill = 0
	a.mu.Unlock()
}
