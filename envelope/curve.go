// SPDX-License-Identifier: EPL-2.0

package envelope

import "github.com/ik5/audsynth/utils"

// Curve is a running instance of a CurveConfig. It is driven by an absolute
// frame number: the first frame it sees becomes its start offset.
//
// A curve of N frames yields its first point on the first frame and its last
// point on frame N. Once N frames have elapsed it reports exhaustion and
// never produces a value again unless DescendTo re-arms it.
type Curve struct {
	cfg    CurveConfig
	points []Point

	rate   uint32
	frames uint32

	start     uint32
	atStart   bool
	exhausted bool

	last    float32
	hasLast bool
}

// NewCurve creates a curve positioned at its start.
func NewCurve(cfg CurveConfig) *Curve {
	c := &Curve{cfg: cfg}
	c.reset(append([]Point(nil), cfg.Points...))
	return c
}

func (c *Curve) reset(points []Point) {
	c.points = points
	c.atStart = true
	c.exhausted = false
	c.hasLast = false
	c.last = 0
}

func (c *Curve) framesAt(sampleRate uint32) uint32 {
	if sampleRate != c.rate {
		c.rate = sampleRate
		c.frames = c.cfg.Frames(sampleRate)
	}
	return c.frames
}

// Advance returns the amplitude for frame, or false once the curve's
// duration has elapsed.
func (c *Curve) Advance(frame, sampleRate uint32) (float32, bool) {
	if c.exhausted {
		return 0, false
	}

	frames := c.framesAt(sampleRate)
	if c.atStart {
		c.start = frame
		c.atStart = false
	}

	elapsed := frame - c.start
	if elapsed >= frames {
		c.exhausted = true
		return 0, false
	}

	pos := float32(1)
	if frames > 1 {
		pos = float32(elapsed) / float32(frames-1)
	}

	v := c.valueAt(pos)
	c.last, c.hasLast = v, true
	return v, true
}

// TerminalValue is the last amplitude produced. A curve that never produced
// anything reports its final control point instead.
func (c *Curve) TerminalValue() (float32, bool) {
	if c.hasLast {
		return c.last, true
	}
	if n := len(c.points); n > 0 {
		return c.points[n-1].Y, true
	}
	return 0, false
}

// IsAtStart reports whether the curve has not been advanced yet.
func (c *Curve) IsAtStart() bool {
	return c.atStart
}

// IsExhausted reports whether the curve has run its full duration.
func (c *Curve) IsExhausted() bool {
	return c.exhausted
}

// DescendTo re-arms the curve so that it starts at value and ends at its
// configured target.
func (c *Curve) DescendTo(value float32, sampleRate uint32) {
	src := c.cfg.Points
	var points []Point
	switch len(src) {
	case 0:
		points = []Point{{X: 0, Y: value}, {X: 1, Y: 0}}
	case 1:
		points = []Point{{X: 0, Y: value}, {X: 1, Y: src[0].Y}}
	default:
		points = append([]Point(nil), src...)
		points[0] = Point{X: 0, Y: value}
	}

	c.reset(points)
	c.rate = sampleRate
	c.frames = c.cfg.Frames(sampleRate)
}

func (c *Curve) valueAt(pos float32) float32 {
	p := c.points
	switch {
	case len(p) == 0:
		return 0
	case pos <= p[0].X:
		return p[0].Y
	case pos >= p[len(p)-1].X:
		return p[len(p)-1].Y
	}

	i := 0
	for i < len(p)-2 && pos >= p[i+1].X {
		i++
	}

	span := p[i+1].X - p[i].X
	if span <= 0 {
		return p[i+1].Y
	}
	x := (pos - p[i].X) / span

	switch c.cfg.Interpolation {
	case Step:
		return p[i].Y
	case Cubic:
		y0 := p[i].Y
		if i > 0 {
			y0 = p[i-1].Y
		}
		y3 := p[i+1].Y
		if i+2 < len(p) {
			y3 = p[i+2].Y
		}
		return utils.CubicInterpolate(y0, p[i].Y, p[i+1].Y, y3, x)
	default:
		return utils.Lerp(p[i].Y, p[i+1].Y, x)
	}
}
