// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// PlayingState is the control signal shared between a voice's controller
// and every envelope of that voice.
type PlayingState int32

const (
	Playing PlayingState = iota
	Sustaining
	Stopping
	Stopped
)

func (s PlayingState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Sustaining:
		return "sustaining"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("PlayingState(%d)", int32(s))
	}
}

// State is an atomically updated PlayingState.
//
// The voice controller moves it between Playing, Sustaining and Stopping.
// Only an envelope moves it to Stopped, and Stopped is absorbing: once
// reached no other transition has any effect. Done is closed at that moment.
type State struct {
	v    atomic.Int32
	done chan struct{}
	once sync.Once
}

// NewState returns a state in Playing.
func NewState() *State {
	return &State{done: make(chan struct{})}
}

// Load returns the current value.
func (s *State) Load() PlayingState {
	return PlayingState(s.v.Load())
}

// Stop requests a release. It reports false when the state was already Stopped.
func (s *State) Stop() bool {
	return s.set(Stopping)
}

// Sustain marks the key as released while the pedal holds the note.
// It reports false when the state was already Stopped.
func (s *State) Sustain() bool {
	return s.set(Sustaining)
}

func (s *State) set(next PlayingState) bool {
	for {
		cur := s.v.Load()
		if PlayingState(cur) == Stopped {
			return false
		}
		if s.v.CompareAndSwap(cur, int32(next)) {
			return true
		}
	}
}

// markStopped is the terminal transition, performed by an envelope when its
// release completes.
func (s *State) markStopped() {
	s.v.Store(int32(Stopped))
	s.once.Do(func() { close(s.done) })
}

// Done is closed once the state reaches Stopped.
func (s *State) Done() <-chan struct{} {
	return s.done
}

// IsPlaying reports whether the key is still held.
func (s *State) IsPlaying() bool {
	return s.Load() == Playing
}

// IsStopped reports whether the envelope owning the state has finished.
func (s *State) IsStopped() bool {
	return s.Load() == Stopped
}

// shouldRelease reports whether an envelope must move to its release stage.
func (s *State) shouldRelease() bool {
	switch s.Load() {
	case Playing, Sustaining:
		return false
	default:
		return true
	}
}
