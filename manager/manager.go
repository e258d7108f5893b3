// SPDX-License-Identifier: EPL-2.0

package manager

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audsynth/sampler"
)

const (
	// DefaultIdleInterval is how long dispatch waits for a request before
	// it prunes the registry.
	DefaultIdleInterval = 10 * time.Millisecond

	// DefaultRequestBuffer is the capacity of the request queue.
	DefaultRequestBuffer = 16
)

type entry struct {
	id       uint64
	src      sampler.Sampler
	handle   *Handle
	finished atomic.Bool // set by the audio goroutine, read by dispatch
}

func (e *entry) expired() bool {
	return e.finished.Load() || e.handle.Released()
}

type request struct {
	src   sampler.Sampler
	reply chan *Handle
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIdleInterval sets the dispatch idle tick.
func WithIdleInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idle = d
		}
	}
}

// WithRequestBuffer sets how many Play requests may queue before callers
// block.
func WithRequestBuffer(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.bufSize = n
		}
	}
}

// Manager is the registry of playing sounds.
type Manager struct {
	entries atomic.Pointer[[]*entry]

	requests chan request
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once

	nextID uint64 // owned by dispatch

	idle    time.Duration
	bufSize int
	logger  *slog.Logger
}

// New creates a manager and starts its dispatch goroutine. Close stops it.
func New(opts ...Option) *Manager {
	m := &Manager{
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		idle:    DefaultIdleInterval,
		bufSize: DefaultRequestBuffer,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.requests = make(chan request, m.bufSize)
	m.entries.Store(&[]*entry{})

	go m.dispatch()
	return m
}

// Play registers src and returns its handle once dispatch has published it.
//
// If ctx ends after the request was queued, the sound may still have been
// registered; it is released as soon as its handle arrives.
func (m *Manager) Play(ctx context.Context, src sampler.Sampler) (*Handle, error) {
	if src == nil {
		return nil, ErrNilSampler
	}

	req := request{src: src, reply: make(chan *Handle, 1)}

	select {
	case <-m.quit:
		return nil, ErrClosed
	default:
	}

	select {
	case m.requests <- req:
	case <-m.quit:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case h := <-req.reply:
		return h, nil
	case <-m.done:
		// dispatch may have answered just before exiting
		select {
		case h := <-req.reply:
			return h, nil
		default:
			return nil, ErrClosed
		}
	case <-ctx.Done():
		go m.abandon(req.reply)
		return nil, ctx.Err()
	}
}

func (m *Manager) abandon(reply <-chan *Handle) {
	select {
	case h := <-reply:
		h.Release()
	case <-m.done:
	}
}

// Mix samples every registered sound once and returns their sum.
//
// Mix must only be called from one goroutine at a time: samplers are not
// expected to be safe for concurrent use.
func (m *Manager) Mix(sampleRate uint32) sampler.Sample {
	var mixed sampler.Sample
	for _, e := range *m.entries.Load() {
		if e.expired() {
			continue
		}
		if s, ok := e.src.Sample(sampleRate); ok {
			mixed = mixed.Add(s)
		}
		if sampler.IsFinished(e.src) {
			e.finished.Store(true)
		}
	}
	return mixed
}

// Len returns the number of registered sounds, including those waiting to
// be pruned.
func (m *Manager) Len() int {
	return len(*m.entries.Load())
}

// Close stops the dispatch goroutine and waits for it to exit. Sounds that
// are already registered keep mixing.
func (m *Manager) Close() error {
	m.once.Do(func() { close(m.quit) })
	<-m.done
	return nil
}

func (m *Manager) dispatch() {
	defer close(m.done)

	ticker := time.NewTicker(m.idle)
	defer ticker.Stop()

	for {
		select {
		case <-m.quit:
			return
		case req := <-m.requests:
			m.register(req)
		case <-ticker.C:
			m.prune()
		}
	}
}

func (m *Manager) register(req request) {
	h := &Handle{id: m.nextID}
	m.nextID++

	cur := *m.entries.Load()
	next := make([]*entry, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, &entry{id: h.id, src: req.src, handle: h})
	m.entries.Store(&next)

	m.logger.Debug("sound registered",
		slog.Uint64("id", h.id),
		slog.Int("active", len(next)),
	)

	// reply has room for exactly one value, so this never blocks
	req.reply <- h
}

func (m *Manager) prune() {
	cur := *m.entries.Load()

	expired := 0
	for _, e := range cur {
		if e.expired() {
			expired++
		}
	}
	if expired == 0 {
		return
	}

	next := make([]*entry, 0, len(cur)-expired)
	for _, e := range cur {
		if e.expired() {
			m.logger.Debug("sound pruned",
				slog.Uint64("id", e.id),
				slog.Bool("finished", e.finished.Load()),
				slog.Bool("released", e.handle.Released()),
			)
			continue
		}
		next = append(next, e)
	}
	m.entries.Store(&next)
}
