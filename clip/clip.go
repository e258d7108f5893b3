// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audsynth/sampler"
)

const readChunk = 4096

// Clip is decoded audio held in memory as interleaved float32 samples.
type Clip struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// Read drains src into a Clip. src is not closed.
func Read(src Source) (*Clip, error) {
	rate, channels := src.SampleRate(), src.Channels()
	if rate <= 0 || channels <= 0 {
		return nil, ErrInvalidLayout
	}

	c := &Clip{SampleRate: rate, Channels: channels}
	buf := make([]float32, readChunk-readChunk%channels)
	for {
		n, err := src.ReadSamples(buf)
		c.Data = append(c.Data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// a decoder that neither advances nor fails would spin forever
			return nil, fmt.Errorf("reading samples: %w", io.ErrNoProgress)
		}
	}

	// drop a trailing partial frame
	c.Data = c.Data[:len(c.Data)-len(c.Data)%channels]
	if len(c.Data) == 0 {
		return nil, ErrEmptyClip
	}
	return c, nil
}

// Frames returns the number of frames in the clip.
func (c *Clip) Frames() int {
	return len(c.Data) / c.Channels
}

// Duration returns the playing time at the clip's own rate.
func (c *Clip) Duration() time.Duration {
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Frame returns frame i as a stereo sample. Mono clips are copied to both
// channels; channels beyond the second are ignored. Out of range frames
// are clamped to the first or last frame.
func (c *Clip) Frame(i int) sampler.Sample {
	i = max(0, min(i, c.Frames()-1))
	off := i * c.Channels
	if c.Channels == 1 {
		return sampler.Mono(c.Data[off])
	}
	return sampler.Sample{Left: c.Data[off], Right: c.Data[off+1]}
}
