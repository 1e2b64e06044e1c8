// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is fully decoded interleaved PCM held in memory. A Buffer is
// immutable once built, so it can be shared between goroutines freely.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32
}

// NewBuffer wraps interleaved samples. Trailing samples that do not form a
// whole frame are dropped.
func NewBuffer(sampleRate, channels int, data []float32) *Buffer {
	if channels < 1 {
		channels = 1
	}
	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data[:len(data)-len(data)%channels],
	}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// Frames is the length of the buffer in sample frames.
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

// Data exposes the interleaved samples. Callers must not modify them.
func (b *Buffer) Data() []float32 { return b.data }

// Duration is the playing time at the buffer's own sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.sampleRate) * float64(time.Second))
}

// At returns the sample of channel ch at frame. Frames outside the buffer
// are clamped to the nearest edge; channels beyond the buffer's count reuse
// its last channel, so mono material is broadcast.
func (b *Buffer) At(frame, ch int) float32 {
	n := len(b.data) / b.channels
	if n == 0 {
		return 0
	}
	if frame < 0 {
		frame = 0
	} else if frame >= n {
		frame = n - 1
	}
	if ch >= b.channels {
		ch = b.channels - 1
	}
	return b.data[frame*b.channels+ch]
}

// Peak is the sample range found in one column of a waveform overview.
type Peak struct {
	Min, Max float32
}

// Peaks summarises the buffer into columns min/max pairs across all
// channels, for waveform overview rendering.
func (b *Buffer) Peaks(columns int) []Peak {
	frames := b.Frames()
	if columns <= 0 || frames == 0 {
		return nil
	}

	peaks := make([]Peak, columns)
	for col := range columns {
		start := col * frames / columns
		end := max((col+1)*frames/columns, start+1)
		end = min(end, frames)

		p := Peak{Min: 1, Max: -1}
		for _, s := range b.data[start*b.channels : end*b.channels] {
			p.Min = min(p.Min, s)
			p.Max = max(p.Max, s)
		}
		if p.Min > p.Max {
			p = Peak{}
		}
		peaks[col] = p
	}
	return peaks
}

// ReadAll drains src into a Buffer. It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	chunk := make([]float32, 4096*channels)
	data := make([]float32, 0, src.SampleRate()*channels*4)

	empty := 0
	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				break
			}
		}
	}

	return NewBuffer(src.SampleRate(), channels, data), nil
}

// Load decodes the file at path through reg and converts it to sampleRate
// (no conversion when sampleRate <= 0). All failures are *DecodeError.
func Load(reg *Registry, path string, sampleRate int) (*Buffer, error) {
	src, err := reg.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var stream Source = src
	if sampleRate > 0 && src.SampleRate() != sampleRate {
		stream = NewResampler(src, sampleRate)
	}

	buf, err := ReadAll(stream)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if buf.Frames() == 0 {
		return nil, &DecodeError{Path: path, Err: ErrEmptySource}
	}
	return buf, nil
}
