// SPDX-License-Identifier: EPL-2.0

package synthtest

import (
	"sync/atomic"

	"github.com/ik5/audsynth/sampler"
)

// ConstSampler returns the same sample on every call. When Frames is
// positive it finishes after that many calls and reports it via Finished.
type ConstSampler struct {
	Value  sampler.Sample
	Frames int64

	calls atomic.Int64
}

// NewConstSampler creates a sampler that never finishes.
func NewConstSampler(left, right float32) *ConstSampler {
	return &ConstSampler{Value: sampler.Sample{Left: left, Right: right}}
}

// NewFiniteSampler creates a sampler that finishes after frames calls.
func NewFiniteSampler(left, right float32, frames int64) *ConstSampler {
	return &ConstSampler{Value: sampler.Sample{Left: left, Right: right}, Frames: frames}
}

func (c *ConstSampler) Sample(uint32) (sampler.Sample, bool) {
	n := c.calls.Add(1)
	if c.Frames > 0 && n > c.Frames {
		return sampler.Sample{}, false
	}
	return c.Value, true
}

// Finished implements sampler.Finisher.
func (c *ConstSampler) Finished() bool {
	return c.Frames > 0 && c.calls.Load() >= c.Frames
}

// Calls returns how many times Sample was called.
func (c *ConstSampler) Calls() int64 {
	return c.calls.Load()
}

// SilentSampler never contributes and never finishes.
type SilentSampler struct{}

func (SilentSampler) Sample(uint32) (sampler.Sample, bool) {
	return sampler.Sample{}, false
}

// PanicSampler panics on its first call.
type PanicSampler struct {
	Message string
}

func (p PanicSampler) Sample(uint32) (sampler.Sample, bool) {
	panic(p.Message)
}

// SequenceMixer returns the queued samples in order, then silence. It
// satisfies device.Mixer.
type SequenceMixer struct {
	Samples []sampler.Sample
	Rates   []uint32
}

func (s *SequenceMixer) Mix(sampleRate uint32) sampler.Sample {
	s.Rates = append(s.Rates, sampleRate)
	if len(s.Samples) == 0 {
		return sampler.Sample{}
	}
	v := s.Samples[0]
	s.Samples = s.Samples[1:]
	return v
}
