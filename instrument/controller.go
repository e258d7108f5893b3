// SPDX-License-Identifier: EPL-2.0

package instrument

import "github.com/ik5/audsynth/envelope"

// Controller collects the playing states of one voice. A ToneGenerator
// must take the state of every envelope it creates from NewState.
type Controller struct {
	states []*envelope.State
}

// NewState creates a state in Playing and tracks it.
func (c *Controller) NewState() *envelope.State {
	s := envelope.NewState()
	c.states = append(c.states, s)
	return s
}

// States returns the tracked states.
func (c *Controller) States() []*envelope.State {
	return c.states
}

func (c *Controller) stop() {
	for _, s := range c.states {
		s.Stop()
	}
}

func (c *Controller) sustain() {
	for _, s := range c.states {
		s.Sustain()
	}
}

func (c *Controller) isPlaying() bool {
	for _, s := range c.states {
		if s.IsPlaying() {
			return true
		}
	}
	return false
}
