// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"math"

	"github.com/ik5/audsynth/sampler"
	"github.com/ik5/audsynth/utils"
)

// Player reads a Clip as a sampler.Generator. Ratio 1 plays the clip at its
// recorded pitch whatever the output rate; ratio 2 plays it an octave up.
type Player struct {
	clip  *Clip
	ratio float64
	pos   float64 // in clip frames
	loop  bool
}

// NewPlayer starts at the beginning of c.
func NewPlayer(c *Clip, ratio float64) *Player {
	return &Player{clip: c, ratio: ratio}
}

// SetLoop makes the player wrap around instead of going silent at the end.
func (p *Player) SetLoop(loop bool) {
	p.loop = loop
}

// Done reports whether a non looping player went past the last frame.
func (p *Player) Done() bool {
	return !p.loop && p.pos >= float64(p.clip.Frames())
}

// Generate implements sampler.Generator. Past the end it yields silence.
func (p *Player) Generate(sampleRate uint32) sampler.Sample {
	frames := p.clip.Frames()
	if p.loop && p.pos >= float64(frames) {
		p.pos = math.Mod(p.pos, float64(frames))
	}
	if p.pos >= float64(frames) || sampleRate == 0 {
		return sampler.Sample{}
	}

	i := int(p.pos)
	x := float32(p.pos - float64(i))

	// the window repeats edge frames, or wraps when looping
	at := func(j int) sampler.Sample {
		if p.loop {
			j = ((j % frames) + frames) % frames
		}
		return p.clip.Frame(j)
	}
	y0, y1, y2, y3 := at(i-1), at(i), at(i+1), at(i+2)

	out := sampler.Sample{
		Left:  utils.Clamp(utils.CubicInterpolate(y0.Left, y1.Left, y2.Left, y3.Left, x)),
		Right: utils.Clamp(utils.CubicInterpolate(y0.Right, y1.Right, y2.Right, y3.Right, x)),
	}

	p.pos += p.ratio * float64(p.clip.SampleRate) / float64(sampleRate)
	return out
}
