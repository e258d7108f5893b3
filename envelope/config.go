// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"fmt"
	"strings"
	"time"
)

// Interpolation selects how a curve moves between two control points.
type Interpolation int

const (
	// Linear draws a straight line between neighbouring points.
	Linear Interpolation = iota
	// Cubic draws a Catmull-Rom spline through the points.
	Cubic
	// Step holds each point's value until the next point is reached.
	Step
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps a configuration name to an Interpolation.
// The empty string selects Linear.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	case "step":
		return Step, nil
	default:
		return Linear, fmt.Errorf("%w: %q", ErrUnknownInterpolation, name)
	}
}

// Point is a control point of a curve. X is the position within the curve
// as a fraction of its duration, Y is the amplitude at that position.
type Point struct {
	X float32
	Y float32
}

// CurveConfig describes one stage of an envelope.
type CurveConfig struct {
	// Duration of the stage. Zero means the curve is exhausted immediately,
	// which is how an open-ended sustain plateau is expressed.
	Duration      time.Duration
	Points        []Point
	Interpolation Interpolation
}

// Ramp is a straight line from one amplitude to another.
func Ramp(d time.Duration, from, to float32) CurveConfig {
	return CurveConfig{
		Duration: d,
		Points:   []Point{{X: 0, Y: from}, {X: 1, Y: to}},
	}
}

// Level is a zero length curve whose terminal value is v.
func Level(v float32) CurveConfig {
	return CurveConfig{Points: []Point{{X: 1, Y: v}}}
}

// Frames converts the duration to a frame count at sampleRate.
func (c CurveConfig) Frames(sampleRate uint32) uint32 {
	if c.Duration <= 0 {
		return 0
	}
	return uint32(int64(c.Duration) * int64(sampleRate) / int64(time.Second))
}

// Validate checks the duration and control points.
func (c CurveConfig) Validate() error {
	if c.Duration < 0 {
		return ErrNegativeDuration
	}
	for i, p := range c.Points {
		if p.X < 0 || p.X > 1 {
			return fmt.Errorf("point %d: %w", i, ErrPointOutOfRange)
		}
		if i > 0 && p.X < c.Points[i-1].X {
			return fmt.Errorf("point %d: %w", i, ErrPointsNotSorted)
		}
	}
	return nil
}

// Config holds the five curves that make up an envelope.
type Config struct {
	Attack  CurveConfig
	Hold    CurveConfig
	Decay   CurveConfig
	Sustain CurveConfig
	Release CurveConfig
}

// ADSR builds the common shape: attack from silence to peak, decay from
// peak to the sustain level, an open-ended sustain and a release to silence.
func ADSR(attack, decay time.Duration, peak, sustain float32, release time.Duration) Config {
	return Config{
		Attack:  Ramp(attack, 0, peak),
		Hold:    Level(peak),
		Decay:   Ramp(decay, peak, sustain),
		Sustain: Level(sustain),
		Release: Ramp(release, sustain, 0),
	}
}

// Validate checks every curve.
func (c Config) Validate() error {
	curves := []struct {
		name  string
		curve CurveConfig
	}{
		{"attack", c.Attack},
		{"hold", c.Hold},
		{"decay", c.Decay},
		{"sustain", c.Sustain},
		{"release", c.Release},
	}
	for _, cc := range curves {
		if err := cc.curve.Validate(); err != nil {
			return fmt.Errorf("%s: %w", cc.name, err)
		}
	}
	return nil
}
