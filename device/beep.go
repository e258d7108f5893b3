// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"log/slog"

	"github.com/gopxl/beep/v2"
)

// BeepStreamer exposes a Mixer as an endless stereo beep.Streamer so it can
// be fed into beep pipelines or played with beep's speaker.
type BeepStreamer struct {
	mixer      Mixer
	sampleRate uint32
	err        error
	logger     *slog.Logger
}

// NewBeepStreamer creates a streamer mixing at sampleRate.
func NewBeepStreamer(m Mixer, sampleRate uint32, opts ...Option) (*BeepStreamer, error) {
	if sampleRate == 0 {
		return nil, ErrInvalidSampleRate
	}

	s := newSettings(opts)
	return &BeepStreamer{mixer: m, sampleRate: sampleRate, logger: s.logger}, nil
}

// Format describes the streamed audio.
func (b *BeepStreamer) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(b.sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
}

// Stream implements beep.Streamer. It never drains: silence is a valid mix.
func (b *BeepStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if b.err != nil {
		return 0, false
	}

	defer func() {
		if r := recover(); r != nil {
			b.err = fmt.Errorf("%w: %v", ErrSourcePanicked, r)
			b.logger.Error("beep stream stopped", slog.String("error", b.err.Error()))
			ok = false
		}
	}()

	for i := range samples {
		s := b.mixer.Mix(b.sampleRate)
		samples[i][0] = float64(s.Left)
		samples[i][1] = float64(s.Right)
		n++
	}
	return n, true
}

// Err implements beep.Streamer.
func (b *BeepStreamer) Err() error {
	return b.err
}
