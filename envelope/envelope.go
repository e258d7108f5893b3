// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"context"
	"fmt"
	"log/slog"
)

// Stage is the position of an envelope within its five curves.
type Stage int

const (
	Attack Stage = iota
	Hold
	Decay
	Sustain
	Release
	Completed
)

func (s Stage) String() string {
	switch s {
	case Attack:
		return "attack"
	case Hold:
		return "hold"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Option configures an Envelope.
type Option func(*Envelope)

// WithLogger sets the logger used to trace stage transitions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Envelope) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Envelope produces one amplitude per output frame by walking its curves
// in order: attack, hold, decay, sustain, release.
//
// An Envelope is not safe for concurrent use; it belongs to the goroutine
// that renders audio. Its State is the only part meant to be shared.
type Envelope struct {
	frame uint32
	stage Stage
	state *State

	last    float32
	hasLast bool

	attack  *Curve
	hold    *Curve
	decay   *Curve
	sustain *Curve
	release *Curve

	logger *slog.Logger
}

// New creates an envelope in its attack stage. A nil state gets a fresh one.
func New(cfg Config, state *State, opts ...Option) *Envelope {
	if state == nil {
		state = NewState()
	}

	e := &Envelope{
		stage:   Attack,
		state:   state,
		attack:  NewCurve(cfg.Attack),
		hold:    NewCurve(cfg.Hold),
		decay:   NewCurve(cfg.Decay),
		sustain: NewCurve(cfg.Sustain),
		release: NewCurve(cfg.Release),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stage returns the current stage.
func (e *Envelope) Stage() Stage { return e.stage }

// State returns the shared playing state.
func (e *Envelope) State() *State { return e.state }

// Next advances one frame and returns its amplitude. It returns false only
// once the envelope has completed.
func (e *Envelope) Next(sampleRate uint32) (float32, bool) {
	e.frame++

	var (
		stage Stage
		v     float32
		ok    bool
	)
	switch e.stage {
	case Attack:
		stage, v, ok = e.advanceAttack(sampleRate)
	case Hold:
		stage, v, ok = e.unlessReleasing(e.advanceHold, sampleRate)
	case Decay:
		stage, v, ok = e.unlessReleasing(e.advanceDecay, sampleRate)
	case Sustain:
		stage, v, ok = e.unlessReleasing(e.advanceSustain, sampleRate)
	case Release:
		stage, v, ok = e.advanceRelease(sampleRate)
	default:
		stage = Completed
	}

	if stage != e.stage && e.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.logger.LogAttrs(context.Background(), slog.LevelDebug, "envelope stage changed",
			slog.String("from", e.stage.String()),
			slog.String("to", stage.String()),
			slog.Float64("last", float64(e.last)),
		)
	}

	e.stage = stage
	e.last, e.hasLast = v, ok
	return v, ok
}

type stageFunc func(sampleRate uint32) (Stage, float32, bool)

// unlessReleasing runs next, or jumps to the release stage when the voice
// has been told to stop.
func (e *Envelope) unlessReleasing(next stageFunc, sampleRate uint32) (Stage, float32, bool) {
	if e.state.shouldRelease() {
		return e.advanceRelease(sampleRate)
	}
	return next(sampleRate)
}

// Attack never looks at the state: once started it always runs to the end.
func (e *Envelope) advanceAttack(sampleRate uint32) (Stage, float32, bool) {
	if v, ok := e.attack.Advance(e.frame, sampleRate); ok {
		return Attack, v, true
	}
	return e.unlessReleasing(e.advanceHold, sampleRate)
}

func (e *Envelope) advanceHold(sampleRate uint32) (Stage, float32, bool) {
	if v, ok := e.hold.Advance(e.frame, sampleRate); ok {
		return Hold, v, true
	}
	return e.unlessReleasing(e.advanceDecay, sampleRate)
}

func (e *Envelope) advanceDecay(sampleRate uint32) (Stage, float32, bool) {
	if v, ok := e.decay.Advance(e.frame, sampleRate); ok {
		return Decay, v, true
	}
	return e.unlessReleasing(e.advanceSustain, sampleRate)
}

func (e *Envelope) advanceSustain(sampleRate uint32) (Stage, float32, bool) {
	if v, ok := e.sustain.Advance(e.frame, sampleRate); ok {
		return Sustain, v, true
	}
	if v, ok := e.sustain.TerminalValue(); ok {
		return Sustain, v, true
	}
	return Sustain, e.last, e.hasLast
}

func (e *Envelope) advanceRelease(sampleRate uint32) (Stage, float32, bool) {
	if e.release.IsAtStart() && e.hasLast {
		e.release.DescendTo(e.last, sampleRate)
	}
	if v, ok := e.release.Advance(e.frame, sampleRate); ok {
		return Release, v, true
	}

	e.state.markStopped()
	return Completed, 0, false
}
