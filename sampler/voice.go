// SPDX-License-Identifier: EPL-2.0

package sampler

import "github.com/ik5/audsynth/envelope"

// Generator is the raw signal of a voice, produced one frame at a time.
// Oscillator and clip players implement it.
type Generator interface {
	Generate(sampleRate uint32) Sample
}

// Voice is a generator shaped by envelopes. Its amplitude is the product
// of every envelope's amplitude times the voice gain.
//
// Voice is owned by the goroutine that samples it.
type Voice struct {
	gen       Generator
	envelopes []*envelope.Envelope
	gain      float32
	pan       float32
	finished  bool
}

// NewVoice creates a centred voice. A voice without envelopes never finishes.
func NewVoice(gen Generator, gain float32, envelopes ...*envelope.Envelope) *Voice {
	return &Voice{gen: gen, envelopes: envelopes, gain: gain}
}

// SetPan places the voice between -1 (left) and 1 (right).
func (v *Voice) SetPan(pan float32) {
	v.pan = max(-1, min(1, pan))
}

// Sample implements Sampler. Every envelope advances exactly once per call so
// that they stay frame aligned, even when one of them has nothing to give.
func (v *Voice) Sample(sampleRate uint32) (Sample, bool) {
	if v.finished {
		return Sample{}, false
	}

	amp := v.gain
	silent := false
	completed := 0
	for _, env := range v.envelopes {
		a, ok := env.Next(sampleRate)
		if !ok {
			silent = true
			if env.Stage() == envelope.Completed {
				completed++
			}
			continue
		}
		amp *= a
	}

	if len(v.envelopes) > 0 && completed == len(v.envelopes) {
		v.finished = true
		return Sample{}, false
	}

	x := v.gen.Generate(sampleRate)
	if silent {
		return Sample{}, false
	}

	x = x.Scale(amp)
	return Sample{Left: x.Left * min(1, 1-v.pan), Right: x.Right * min(1, 1+v.pan)}, true
}

// Finished reports whether every envelope has completed.
func (v *Voice) Finished() bool {
	return v.finished
}
