// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ik5/audsynth/manager"
)

// PlayingNote is a voice started by PlayNote.
type PlayingNote struct {
	note       Note
	handle     *manager.Handle
	controller *Controller
}

// Note returns the note the voice was started for.
func (p *PlayingNote) Note() Note { return p.note }

// Handle returns the playback handle.
func (p *PlayingNote) Handle() *manager.Handle { return p.handle }

// Stop moves every envelope of the voice to its release.
func (p *PlayingNote) Stop() { p.controller.stop() }

// Sustain marks the key as up while the pedal keeps the voice sounding.
func (p *PlayingNote) Sustain() { p.controller.sustain() }

// IsPlaying reports whether any envelope still has its key held.
func (p *PlayingNote) IsPlaying() bool { return p.controller.isPlaying() }

// teardown stops the voice and starts a watcher that releases the handle
// once every envelope has stopped, or when ctx ends.
func (p *PlayingNote) teardown(ctx context.Context, wg *sync.WaitGroup, logger *slog.Logger) {
	p.Stop()

	states := p.controller.States()
	handle := p.handle

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer handle.Release()

		for _, s := range states {
			select {
			case <-s.Done():
			case <-ctx.Done():
				logger.Debug("voice cut before release finished",
					slog.Uint64("id", handle.ID()),
					slog.Int("step", int(p.note.Step)),
				)
				return
			}
		}

		logger.Debug("voice released",
			slog.Uint64("id", handle.ID()),
			slog.Int("step", int(p.note.Step)),
		)
	}()
}
