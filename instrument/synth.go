// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"log/slog"

	"github.com/ik5/audsynth/envelope"
	"github.com/ik5/audsynth/sampler"
)

// Synth is a ToneGenerator producing one oscillator per note shaped by a
// single envelope.
type Synth struct {
	Waveform sampler.Waveform
	Envelope envelope.Config
	Gain     float32
	Logger   *slog.Logger
}

// GenerateTone implements ToneGenerator.
func (s Synth) GenerateTone(note Note, c *Controller) (sampler.Sampler, error) {
	if err := s.Envelope.Validate(); err != nil {
		return nil, err
	}

	var opts []envelope.Option
	if s.Logger != nil {
		opts = append(opts, envelope.WithLogger(s.Logger.With(slog.Int("step", int(note.Step)))))
	}

	env := envelope.New(s.Envelope, c.NewState(), opts...)
	osc := sampler.NewOscillator(s.Waveform, note.Frequency())
	return sampler.NewVoice(osc, s.Gain*note.Loudness.Gain(), env), nil
}
