// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"math"
	"sync/atomic"
)

// Ring is a single-producer single-consumer sample ring. The producer
// never blocks; a snapshot that overlaps samples the producer overwrote, or
// was about to overwrite, while it was copied is rejected instead of torn.
type Ring struct {
	buf  []uint32 // float32 bits
	fill atomic.Uint64
	// end of the push in progress, stored before any sample of it
	writeEnd atomic.Uint64
}

func NewRing(size int) *Ring {
	return &Ring{buf: make([]uint32, max(size, 1))}
}

func (r *Ring) Cap() int { return len(r.buf) }

// Fill is the total number of samples ever pushed since the last Reset.
func (r *Ring) Fill() uint64 { return r.fill.Load() }

// PushMono averages numFrames interleaved frames of buf, starting at frame
// start, into one sample each.
func (r *Ring) PushMono(buf []float32, channels, start, numFrames int) {
	if channels < 1 || numFrames <= 0 {
		return
	}
	numFrames = min(numFrames, len(buf)/channels-start)
	if start < 0 || numFrames <= 0 {
		return
	}

	size := uint64(len(r.buf))
	fill := r.fill.Load()
	end := fill + uint64(numFrames)
	inv := 1 / float32(channels)

	r.writeEnd.Store(end)

	for f := range numFrames {
		frame := buf[(start+f)*channels : (start+f+1)*channels]
		var s float32
		for _, x := range frame {
			s += x
		}
		atomic.StoreUint32(&r.buf[(fill+uint64(f))%size], math.Float32bits(s*inv))
	}

	// a concurrent Reset wins; the next push starts over from zero
	r.fill.CompareAndSwap(fill, end)
}

// Latest copies the len(dst) most recent samples into dst in order. It
// reports false when fewer samples exist or when the producer overwrote part
// of the window during the copy.
func (r *Ring) Latest(dst []float32) (uint64, bool) {
	n := uint64(len(dst))
	size := uint64(len(r.buf))
	if n > size {
		return 0, false
	}

	fill := r.fill.Load()
	if fill < n {
		return fill, false
	}

	start := fill - n
	for i := range n {
		dst[i] = math.Float32frombits(atomic.LoadUint32(&r.buf[(start+i)%size]))
	}

	// any slot at or past start+size may have been rewritten mid-copy
	end := r.writeEnd.Load()
	if r.fill.Load() < fill || end < fill || end-start > size {
		return fill, false
	}
	return fill, true
}

// Reset forgets every pushed sample.
func (r *Ring) Reset() {
	r.fill.Store(0)
	r.writeEnd.Store(0)
}
