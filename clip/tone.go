// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"github.com/ik5/audsynth/envelope"
	"github.com/ik5/audsynth/instrument"
	"github.com/ik5/audsynth/sampler"
)

// ToneGenerator plays one recorded clip for every note, pitched relative to
// RootStep, the MIDI step the clip was recorded at.
type ToneGenerator struct {
	Clip     *Clip
	RootStep uint8
	Envelope envelope.Config
	Gain     float32
	Loop     bool
}

// GenerateTone implements instrument.ToneGenerator.
func (t ToneGenerator) GenerateTone(note instrument.Note, c *instrument.Controller) (sampler.Sampler, error) {
	if err := t.Envelope.Validate(); err != nil {
		return nil, err
	}
	if t.Clip == nil || t.Clip.Frames() == 0 {
		return nil, ErrEmptyClip
	}

	ratio := instrument.StepFrequency(float64(note.Step)) / instrument.StepFrequency(float64(t.RootStep))
	p := NewPlayer(t.Clip, ratio)
	p.SetLoop(t.Loop)

	env := envelope.New(t.Envelope, c.NewState())
	return sampler.NewVoice(p, t.Gain*note.Loudness.Gain(), env), nil
}
