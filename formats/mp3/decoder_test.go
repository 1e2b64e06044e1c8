// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"io"
	"testing"
)

type mockReader struct {
	data   []byte
	chunk  int
	offset int
	rate   int
}

func (m *mockReader) SampleRate() int { return m.rate }

func (m *mockReader) Read(p []byte) (int, error) {
	if m.offset >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), m.chunk)], m.data[m.offset:])
	m.offset += n
	return n, nil
}

func TestSourceConvertsPCM(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F, 0x00, 0x80}
	want := []float32{0.5, -0.5, 32767.0 / 32768.0, -1}

	tests := []struct {
		name  string
		chunk int
	}{
		{"whole reads", 64},
		{"odd byte reads", 3},
		{"single bytes", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &source{dec: &mockReader{data: data, chunk: tt.chunk, rate: 44100}, sampleRate: 44100}
			var got []float32
			dst := make([]float32, 4)
			for range 20 {
				n, err := s.ReadSamples(dst)
				got = append(got, dst[:n]...)
				if err == io.EOF {
					break
				}
			}

			if len(got) != len(want) {
				t.Fatalf("got %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an mp3 stream"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestSourceFormat(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockReader{rate: 48000}, sampleRate: 48000}
	if s.Channels() != 2 || s.SampleRate() != 48000 {
		t.Errorf("format = %d ch @ %d", s.Channels(), s.SampleRate())
	}
	if n, err := s.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("empty ReadSamples() = %d, %v", n, err)
	}
}
