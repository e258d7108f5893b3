// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"math"
	"strings"
)

// Waveform is the shape of an oscillator's cycle.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Saw
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform maps a configuration name to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "":
		return Sine, nil
	case "square":
		return Square, nil
	case "saw", "sawtooth":
		return Saw, nil
	case "triangle":
		return Triangle, nil
	default:
		return Sine, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
	}
}

// Oscillator is a phase accumulator. The phase is kept in float64 so long
// notes do not drift.
type Oscillator struct {
	wave  Waveform
	freq  float64
	phase float64
}

// NewOscillator creates an oscillator at freq Hz starting at phase zero.
func NewOscillator(wave Waveform, freq float64) *Oscillator {
	return &Oscillator{wave: wave, freq: freq}
}

// Frequency returns the oscillator frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Next returns the value at the current phase and advances by one frame.
func (o *Oscillator) Next(sampleRate uint32) float32 {
	v := o.valueAt(o.phase)
	if sampleRate > 0 {
		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
	}
	return v
}

// Generate implements Generator with the same value on both channels.
func (o *Oscillator) Generate(sampleRate uint32) Sample {
	return Mono(o.Next(sampleRate))
}

func (o *Oscillator) valueAt(phase float64) float32 {
	switch o.wave {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return float32(2*phase - 1)
	case Triangle:
		return float32(1 - 4*math.Abs(phase-0.5))
	default:
		return float32(math.Sin(2 * math.Pi * phase))
	}
}
