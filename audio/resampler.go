// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/otodecks/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated before the
// source is treated as exhausted.
const maxEmptyReads = 8

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int

	// Window of 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	valid  [4]bool
	primed bool

	// Fractional position between frames[1] and frames[2]
	pos float64

	// Buffered reads from source
	srcBuf []float32
	srcN   int
	srcIdx int
	eof    bool

	// One-pole low-pass state for anti-aliasing (when downsampling)
	filterState []float32
	useFilter   bool
	seeded      bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, 4096-4096%channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.srcIdx+r.channels > r.srcN {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcN = n - n%r.channels
		r.srcIdx = 0
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if n == 0 && err == nil {
			empty++
			if empty >= maxEmptyReads {
				r.eof = true
			}
		}
	}

	copy(dst, r.srcBuf[r.srcIdx:r.srcIdx+r.channels])
	r.srcIdx += r.channels

	if r.useFilter {
		if !r.seeded {
			// Seed with the first frame to avoid a warm-up transient
			copy(r.filterState, dst)
			r.seeded = true
		}
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < 4; i++ {
		ok, err := r.nextFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
	}
	copy(r.frames[0], r.frames[1])
	r.valid[0] = r.valid[1]
	return nil
}

// shift rotates the window one frame forward and reads the new t+2 frame.
func (r *Resampler) shift() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	ok, err := r.nextFrame(r.frames[3])
	r.valid[3] = ok
	return err
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		y2 := r.frames[1]
		if r.valid[2] {
			y2 = r.frames[2]
		}
		y3 := y2
		if r.valid[3] {
			y3 = r.frames[3]
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.frames[0][c], r.frames[1][c], y2[c], y3[c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
