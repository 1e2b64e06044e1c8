// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"
)

// ErrUnsupportedBitDepth is returned for sample sizes other than 8, 16, 24 or 32 bits.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// IntReader is the part of the go-audio wav and aiff decoders a Source needs.
type IntReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source adapts a go-audio integer PCM decoder to audio.Source.
type Source struct {
	dec        IntReader
	sampleRate int
	channels   int
	scale      float32
	offset     int
	intBuf     *goaudio.IntBuffer
}

// NewSource wraps dec. unsigned8 marks 8-bit material stored as unsigned
// bytes (WAV) rather than signed (AIFF).
func NewSource(dec IntReader, bitDepth int, unsigned8 bool) (*Source, error) {
	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedBitDepth
	}

	s := &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}

	switch bitDepth {
	case 8:
		s.scale = 1.0 / 128.0
		if unsigned8 {
			s.offset = 128
		}
	case 16:
		s.scale = 1.0 / 32768.0
	case 24:
		s.scale = 1.0 / 8388608.0
	case 32:
		s.scale = 1.0 / 2147483648.0
	default:
		return nil, ErrUnsupportedBitDepth
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, err
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}
