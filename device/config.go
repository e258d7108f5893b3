// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"strings"
	"time"
)

// Format is the numeric representation of one output sample.
type Format int

const (
	Float32 Format = iota
	Int16
	Uint16
)

func (f Format) String() string {
	switch f {
	case Float32:
		return "f32"
	case Int16:
		return "i16"
	case Uint16:
		return "u16"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a configuration name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "f32", "float32":
		return Float32, nil
	case "i16", "int16", "s16":
		return Int16, nil
	case "u16", "uint16":
		return Uint16, nil
	default:
		return Float32, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// BytesPerSample returns the encoded size of one sample.
func (f Format) BytesPerSample() int {
	if f == Float32 {
		return 4
	}
	return 2
}

// Config describes the negotiated output stream.
type Config struct {
	SampleRate uint32
	Channels   int
	Format     Format

	// BufferSize is the output latency hint handed to the backend. Zero
	// lets the backend choose.
	BufferSize time.Duration
}

// Validate rejects configurations no backend can play.
func (c Config) Validate() error {
	if c.SampleRate == 0 {
		return ErrInvalidSampleRate
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, c.Channels)
	}
	switch c.Format {
	case Float32, Int16, Uint16:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, c.Format)
	}
	return nil
}

// FrameSize returns the encoded size of one frame in bytes.
func (c Config) FrameSize() int {
	return c.Channels * c.Format.BytesPerSample()
}

// Frames converts a duration to a frame count at the configured rate.
func (c Config) Frames(d time.Duration) int {
	return int(int64(d) * int64(c.SampleRate) / int64(time.Second))
}
