// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type fakeReader struct {
	format *goaudio.Format
	data   []int
	pos    int
	err    error
}

func (f *fakeReader) Format() *goaudio.Format { return f.format }

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSourceScaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bitDepth  int
		unsigned8 bool
		in        []int
		want      []float32
	}{
		{"16 bit", 16, false, []int{0, 16384, -32768}, []float32{0, 0.5, -1}},
		{"24 bit", 24, false, []int{4194304, -8388608}, []float32{0.5, -1}},
		{"32 bit", 32, false, []int{1073741824}, []float32{0.5}},
		{"8 bit signed", 8, false, []int{64, -128}, []float32{0.5, -1}},
		{"8 bit unsigned", 8, true, []int{128, 192, 0}, []float32{0, 0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := &fakeReader{format: &goaudio.Format{NumChannels: 1, SampleRate: 8000}, data: tt.in}
			src, err := NewSource(dec, tt.bitDepth, tt.unsigned8)
			if err != nil {
				t.Fatal(err)
			}

			dst := make([]float32, 16)
			n, err := src.ReadSamples(dst)
			if n != len(tt.want) || err != io.EOF {
				t.Fatalf("ReadSamples() = %d, %v; want %d, EOF", n, err, len(tt.want))
			}
			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("dst[%d] = %f, want %f", i, dst[i], want)
				}
			}
		})
	}
}

func TestSourceErrors(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 2, SampleRate: 44100}
	if _, err := NewSource(&fakeReader{format: format}, 12, false); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("NewSource(12 bit) err = %v", err)
	}

	boom := errors.New("boom")
	src, err := NewSource(&fakeReader{format: format, err: boom}, 16, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() err = %v, want boom", err)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	rs, err := ReadSeeker(io.LimitReader(strings.NewReader("hello"), 5))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rs.Seek(1, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "ello" {
		t.Errorf("after seek read %q, want %q", rest, "ello")
	}

	sr := strings.NewReader("x")
	if got, _ := ReadSeeker(sr); got != sr {
		t.Error("seekable reader was not returned as is")
	}
}
