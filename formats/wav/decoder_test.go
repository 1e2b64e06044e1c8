// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/otodecks/internal/audiotest"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		pcm      []int16
		want     []float32
	}{
		{"mono", 8000, 1, []int16{0, 16384, -32768, 32767}, []float32{0, 0.5, -1, 32767.0 / 32768.0}},
		{"stereo", 44100, 2, []int16{16384, -16384, 0, 8192}, []float32{0.5, -0.5, 0, 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(audiotest.WAV16(tt.rate, tt.channels, tt.pcm)))
			if err != nil {
				t.Fatal(err)
			}
			defer src.Close()

			if src.SampleRate() != tt.rate || src.Channels() != tt.channels {
				t.Fatalf("format = %d Hz %d ch, want %d Hz %d ch", src.SampleRate(), src.Channels(), tt.rate, tt.channels)
			}

			dst := make([]float32, 64)
			n, err := src.ReadSamples(dst)
			if err != nil && err != io.EOF {
				t.Fatal(err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() = %d, want %d", n, len(tt.want))
			}
			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("dst[%d] = %f, want %f", i, dst[i], want)
				}
			}

			if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
				t.Errorf("read past end = %d, %v; want 0, EOF", n, err)
			}
		})
	}
}

func TestDecodeNonSeekable(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(8000, 1, audiotest.ConstantPCM(100, 1, 1000))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float32, 200)
	n, _ := src.ReadSamples(dst)
	if n != 100 {
		t.Errorf("ReadSamples() = %d, want 100", n)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a RIFF WAVE stream.....")},
		{"riff but not wave", append([]byte("RIFF\x24\x00\x00\x00AVI "), make([]byte, 32)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() err = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestWriteWAV16RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200, 300, -300}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 22050, 2, samples); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf.Bytes(), audiotest.WAV16(22050, 2, samples)) {
		t.Fatal("WriteWAV16 output differs from canonical WAV layout")
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if src.Channels() != 2 || src.SampleRate() != 22050 {
		t.Errorf("format = %d ch @ %d", src.Channels(), src.SampleRate())
	}
}

func TestWriteWAV16InvalidChannels(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(io.Discard, 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16(0 channels) err = %v", err)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100)

	b.ReportAllocs()
	for b.Loop() {
		WriteWAV16(io.Discard, 44100, 1, samples)
	}
}
