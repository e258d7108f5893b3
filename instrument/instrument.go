// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/ik5/audsynth/manager"
	"github.com/ik5/audsynth/sampler"
)

// ToneGenerator builds the sampler for a note.
type ToneGenerator interface {
	GenerateTone(note Note, c *Controller) (sampler.Sampler, error)
}

// Player registers samplers for mixing. manager.Manager implements it.
type Player interface {
	Play(ctx context.Context, src sampler.Sampler) (*manager.Handle, error)
}

// Option configures a VirtualInstrument.
type Option func(*VirtualInstrument)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(v *VirtualInstrument) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// VirtualInstrument tracks the voices currently held by the player and the
// state of the sustain pedal. It is safe for concurrent use.
type VirtualInstrument struct {
	player Player
	tone   ToneGenerator
	logger *slog.Logger

	mu      sync.Mutex
	notes   []*PlayingNote
	sustain bool
	closed  bool

	// watchers outlive the voices they release
	ctx     context.Context
	cancel  context.CancelFunc
	watched sync.WaitGroup
}

// New creates an instrument playing through player.
func New(player Player, tone ToneGenerator, opts ...Option) *VirtualInstrument {
	ctx, cancel := context.WithCancel(context.Background())
	v := &VirtualInstrument{
		player: player,
		tone:   tone,
		logger: slog.New(slog.DiscardHandler),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// PlayNote starts a voice for note. A voice already sounding at the same
// step is released first.
func (v *VirtualInstrument) PlayNote(ctx context.Context, note Note) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}

	v.removeLocked(func(p *PlayingNote) bool { return p.note.Step == note.Step })

	c := &Controller{}
	src, err := v.tone.GenerateTone(note, c)
	if err != nil {
		return fmt.Errorf("generating tone for %v: %w", note, err)
	}

	h, err := v.player.Play(ctx, src)
	if err != nil {
		return fmt.Errorf("playing %v: %w", note, err)
	}

	v.notes = append(v.notes, &PlayingNote{note: note, handle: h, controller: c})
	v.logger.Debug("note on",
		slog.Int("step", int(note.Step)),
		slog.String("loudness", note.Loudness.String()),
		slog.Uint64("id", h.ID()),
	)
	return nil
}

// StopNote releases the key at step. With the pedal down the voice keeps
// sounding until the pedal is lifted.
func (v *VirtualInstrument) StopNote(step uint8) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sustain {
		for _, p := range v.notes {
			if p.note.Step == step {
				p.Sustain()
				break
			}
		}
		return
	}

	v.removeLocked(func(p *PlayingNote) bool { return p.note.Step == step })
}

// SetSustain presses or lifts the pedal. Lifting it releases every voice
// whose key is no longer held.
func (v *VirtualInstrument) SetSustain(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sustain = active
	if !active {
		v.removeLocked(func(p *PlayingNote) bool { return !p.IsPlaying() })
	}
}

// Sustain reports whether the pedal is down.
func (v *VirtualInstrument) Sustain() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.sustain
}

// Notes returns the notes of the voices currently tracked.
func (v *VirtualInstrument) Notes() []Note {
	v.mu.Lock()
	defer v.mu.Unlock()

	notes := make([]Note, len(v.notes))
	for i, p := range v.notes {
		notes[i] = p.note
	}
	return notes
}

// Close releases every voice and waits for their release tails to finish.
// When ctx ends first, the remaining voices are cut and Close returns
// ctx's error.
func (v *VirtualInstrument) Close(ctx context.Context) error {
	v.mu.Lock()
	if !v.closed {
		v.closed = true
		v.removeLocked(func(*PlayingNote) bool { return true })
	}
	v.mu.Unlock()

	done := make(chan struct{})
	go func() {
		v.watched.Wait()
		close(done)
	}()

	select {
	case <-done:
		v.cancel()
		return nil
	case <-ctx.Done():
		v.cancel()
		<-done
		return ctx.Err()
	}
}

func (v *VirtualInstrument) removeLocked(match func(*PlayingNote) bool) {
	v.notes = slices.DeleteFunc(v.notes, func(p *PlayingNote) bool {
		if !match(p) {
			return false
		}
		p.teardown(v.ctx, &v.watched, v.logger)
		return true
	})
}
