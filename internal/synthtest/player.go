// SPDX-License-Identifier: EPL-2.0

package synthtest

import (
	"context"
	"errors"
	"sync"

	"github.com/ik5/audsynth/manager"
	"github.com/ik5/audsynth/sampler"
)

// ErrPlayerFailed is returned by a Player whose Fail field is set.
var ErrPlayerFailed = errors.New("player failed")

// Player is a manager without an audio goroutine: it registers samplers
// through a real manager.Manager and keeps them for inspection.
type Player struct {
	*manager.Manager

	Fail bool

	mu       sync.Mutex
	samplers []sampler.Sampler
	handles  []*manager.Handle
}

// NewPlayer creates a Player backed by a fresh manager.
func NewPlayer(opts ...manager.Option) *Player {
	return &Player{Manager: manager.New(opts...)}
}

func (p *Player) Play(ctx context.Context, src sampler.Sampler) (*manager.Handle, error) {
	if p.Fail {
		return nil, ErrPlayerFailed
	}

	h, err := p.Manager.Play(ctx, src)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.samplers = append(p.samplers, src)
	p.handles = append(p.handles, h)
	return h, nil
}

// Samplers returns every sampler played so far.
func (p *Player) Samplers() []sampler.Sampler {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]sampler.Sampler(nil), p.samplers...)
}

// Handles returns every handle handed out so far.
func (p *Player) Handles() []*manager.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*manager.Handle(nil), p.handles...)
}

// Render mixes frames frames and returns them.
func (p *Player) Render(sampleRate uint32, frames int) []sampler.Sample {
	out := make([]sampler.Sample, frames)
	for i := range out {
		out[i] = p.Mix(sampleRate)
	}
	return out
}
