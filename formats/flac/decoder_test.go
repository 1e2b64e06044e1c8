// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gopxl/beep/v2"
)

type mockStreamer struct {
	frames [][2]float64
	err    error
	closed bool
}

func (m *mockStreamer) Stream(samples [][2]float64) (int, bool) {
	if len(m.frames) == 0 {
		return 0, false
	}
	n := copy(samples, m.frames)
	m.frames = m.frames[n:]
	return n, true
}

func (m *mockStreamer) Err() error   { return m.err }
func (m *mockStreamer) Close() error { m.closed = true; return nil }

func TestSourceChannels(t *testing.T) {
	t.Parallel()

	frames := [][2]float64{{0.5, -0.5}, {0.25, -0.25}}

	tests := []struct {
		name     string
		channels int
		want     []float32
	}{
		{"mono", 1, []float32{0.5, 0.25}},
		{"stereo", 2, []float32{0.5, -0.5, 0.25, -0.25}},
		{"surround folds to stereo", 6, []float32{0.5, -0.5, 0.25, -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockStreamer{frames: append([][2]float64(nil), frames...)}
			s := newSource(m, beep.Format{SampleRate: 44100, NumChannels: tt.channels, Precision: 2})

			dst := make([]float32, 16)
			n, err := s.ReadSamples(dst)
			if err != nil || n != len(tt.want) {
				t.Fatalf("ReadSamples() = %d, %v", n, err)
			}
			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("dst[%d] = %f, want %f", i, dst[i], want)
				}
			}

			if n, err := s.ReadSamples(dst); n != 0 || err != io.EOF {
				t.Errorf("read at end = %d, %v", n, err)
			}
			if err := s.Close(); err != nil || !m.closed {
				t.Errorf("Close() = %v, closed = %v", err, m.closed)
			}
		})
	}
}

func TestSourceStreamError(t *testing.T) {
	t.Parallel()

	boom := errors.New("crc mismatch")
	s := newSource(&mockStreamer{err: boom}, beep.Format{SampleRate: 48000, NumChannels: 2})
	if _, err := s.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() err = %v, want %v", err, boom)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("fLaX-nope")))
	if !errors.Is(err, ErrNotFlacFile) {
		t.Errorf("Decode() err = %v, want ErrNotFlacFile", err)
	}
}
