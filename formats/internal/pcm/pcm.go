// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer buffers to float32 clip sources.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16, 24 and 32.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders this package uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams normalized samples out of a Reader.
type Source struct {
	r        Reader
	format   *goaudio.Format
	scale    float32
	offset   int
	bitDepth int
	buf      *goaudio.IntBuffer
}

// NewSource wraps r. Unsigned 8-bit data is centred on 128 the way WAV
// stores it.
func NewSource(r Reader, sampleRate, channels, bitDepth int, unsigned8 bool) (*Source, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	s := &Source{
		r:        r,
		format:   &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		scale:    float32(int64(1) << (bitDepth - 1)),
		bitDepth: bitDepth,
	}
	if bitDepth == 8 && unsigned8 {
		s.offset = 128
	}
	return s, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Format:         s.format,
			Data:           make([]int, len(dst)),
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	n = max(n, 0)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]-s.offset) / s.scale
	}

	switch {
	case err == io.EOF:
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("reading PCM: %w", err)
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}
