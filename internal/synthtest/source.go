// SPDX-License-Identifier: EPL-2.0

package synthtest

import (
	"io"
	"math"
)

// Source generates interleaved float32 frames from a function. It satisfies
// clip.Source without importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	wave       func(frame, channel int) float32
	closed     bool
}

// NewSource creates a source of frames frames.
func NewSource(sampleRate, channels, frames int, wave func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// NewRampSource counts up from 0 in steps of 1/frames on every channel.
func NewRampSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

// NewSineSource creates a sine at freq Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.generated >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.generated)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.generated+f, ch)
		}
	}
	s.generated += n

	if s.generated >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
