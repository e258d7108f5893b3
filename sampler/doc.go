// SPDX-License-Identifier: EPL-2.0

// Package sampler defines the contract every sound producer must satisfy to
// be mixed, plus a few producers built on it.
//
// A Sampler is asked for exactly one stereo Sample per output frame. It may
// answer false to contribute silence for that frame without being removed.
// A sampler that also implements Finisher can tell the mixer it will never
// produce anything again, which lets the mixer drop it.
//
// Voice shapes a Generator, such as an Oscillator, with one or more
// envelopes:
//
//	osc := sampler.NewOscillator(sampler.Sine, 440)
//	env := envelope.New(envelope.ADSR(5*time.Millisecond, 80*time.Millisecond, 1, 0.7, 250*time.Millisecond), nil)
//	v := sampler.NewVoice(osc, 0.5, env)
//
//	s, ok := v.Sample(48000)
package sampler
