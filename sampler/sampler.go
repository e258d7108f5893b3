// SPDX-License-Identifier: EPL-2.0

package sampler

// Sampler produces one frame per call at the given sample rate. Returning
// false means there is nothing to contribute for this frame.
type Sampler interface {
	Sample(sampleRate uint32) (Sample, bool)
}

// Finisher is implemented by samplers that know when they are done for good.
type Finisher interface {
	Finished() bool
}

// Func adapts a plain function to the Sampler interface.
type Func func(sampleRate uint32) (Sample, bool)

func (f Func) Sample(sampleRate uint32) (Sample, bool) {
	return f(sampleRate)
}

// IsFinished reports whether s implements Finisher and says it is done.
func IsFinished(s Sampler) bool {
	f, ok := s.(Finisher)
	return ok && f.Finished()
}
