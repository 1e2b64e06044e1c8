// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync/atomic"

	"github.com/ik5/otodecks/utils"
)

const bytesPerSample = 2

// Source is the audio callback the device pulls from. *otodecks.Engine
// satisfies it.
type Source interface {
	Process(dst []float32)
	SampleRate() int
	Channels() int
}

type sourceRef struct{ src Source }

// Reader adapts a Source to the signed 16-bit little-endian byte stream an
// audio device reads. Read never allocates: it renders through a fixed
// scratch buffer in as many passes as the device asks for.
type Reader struct {
	src      atomic.Pointer[sourceRef]
	channels int
	scratch  []float32
}

// NewReader renders src in chunks of at most blockFrames frames.
func NewReader(src Source, blockFrames int) *Reader {
	channels := max(src.Channels(), 1)
	r := &Reader{
		channels: channels,
		scratch:  make([]float32, max(blockFrames, 1)*channels),
	}
	r.src.Store(&sourceRef{src: src})
	return r
}

// Detach makes Read emit silence from now on.
func (r *Reader) Detach() { r.src.Store(nil) }

// Read fills p with whole frames of PCM. Bytes that do not form a whole frame
// are zeroed. Always returns len(p), nil.
func (r *Reader) Read(p []byte) (int, error) {
	ref := r.src.Load()
	if ref == nil {
		clear(p)
		return len(p), nil
	}

	frameBytes := r.channels * bytesPerSample
	whole := len(p) - len(p)%frameBytes
	clear(p[whole:])

	for off := 0; off < whole; {
		n := min(len(r.scratch), (whole-off)/bytesPerSample)
		chunk := r.scratch[:n]
		ref.src.Process(chunk)
		off += utils.PutPCM16(p[off:], chunk)
	}

	return len(p), nil
}
