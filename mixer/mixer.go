// SPDX-License-Identifier: EPL-2.0

package mixer

// Input renders up to len(dst) interleaved samples and reports how many it
// produced. Whatever it leaves unrendered is mixed as silence.
type Input interface {
	Render(dst []float32) int
}

// InputFunc adapts a plain function to Input.
type InputFunc func(dst []float32) int

func (f InputFunc) Render(dst []float32) int { return f(dst) }

// GainFunc is polled once per Mix call for an input's gain.
type GainFunc func() float32

type channel struct {
	in      Input
	gain    GainFunc
	scratch []float32
	g       float32
}

// Mixer sums any number of inputs into one interleaved output.
type Mixer struct {
	blockSize int
	channels  int
	inputs    []*channel
}

// New returns a mixer rendering in chunks of at most blockSize frames.
func New(blockSize, channels int) *Mixer {
	return &Mixer{
		blockSize: max(blockSize, 1),
		channels:  max(channels, 1),
	}
}

// Add registers an input. A nil gain is unity. Add must not race with Mix.
func (m *Mixer) Add(in Input, gain GainFunc) {
	m.inputs = append(m.inputs, &channel{
		in:      in,
		gain:    gain,
		scratch: make([]float32, m.blockSize*m.channels),
	})
}

func (m *Mixer) Channels() int  { return m.channels }
func (m *Mixer) BlockSize() int { return m.blockSize }

// Mix clears dst and accumulates gain*sample of every input into it. All
// inputs are rendered for every chunk before the chunk is complete. Returns
// len(dst).
func (m *Mixer) Mix(dst []float32) int {
	clear(dst)

	for _, c := range m.inputs {
		c.g = 1
		if c.gain != nil {
			c.g = c.gain()
		}
	}

	chunkLen := m.blockSize * m.channels
	for off := 0; off < len(dst); off += chunkLen {
		chunk := dst[off:min(off+chunkLen, len(dst))]

		for _, c := range m.inputs {
			sc := c.scratch[:len(chunk)]
			n := min(max(c.in.Render(sc), 0), len(sc))
			if c.g == 0 {
				continue
			}
			for i, s := range sc[:n] {
				chunk[i] += c.g * s
			}
		}
	}

	return len(dst)
}
