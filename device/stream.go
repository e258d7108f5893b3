// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/audsynth/sampler"
)

// Mixer produces one mixed frame per call. manager.Manager implements it.
type Mixer interface {
	Mix(sampleRate uint32) sampler.Sample
}

// Option configures the types of this package.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used to report recovered panics and backend
// errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Stream is an io.Reader of encoded frames pulled from a Mixer.
//
// Read may be handed buffers that are not a whole number of frames; the
// remainder of a split frame is delivered first on the next call. A Stream
// must be read from one goroutine at a time, which is what audio backends
// do.
type Stream struct {
	mixer Mixer
	cfg   Config

	frame   []byte
	pending []byte

	err    atomic.Pointer[error]
	logger *slog.Logger
}

// NewStream validates cfg and creates a stream over m.
func NewStream(m Mixer, cfg Config, opts ...Option) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := newSettings(opts)
	return &Stream{
		mixer:  m,
		cfg:    cfg,
		frame:  make([]byte, cfg.FrameSize()),
		logger: s.logger,
	}, nil
}

// Config returns the stream configuration.
func (s *Stream) Config() Config { return s.cfg }

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error {
	if e := s.err.Load(); e != nil {
		return *e
	}
	return nil
}

func (s *Stream) Read(p []byte) (n int, err error) {
	if err := s.Err(); err != nil {
		return 0, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = s.fail(r)
		}
	}()

	n = copy(p, s.pending)
	s.pending = s.pending[n:]

	size := len(s.frame)
	for len(p)-n >= size {
		s.cfg.putFrame(p[n:n+size], s.mixer.Mix(s.cfg.SampleRate))
		n += size
	}

	if len(p) > n && len(s.pending) == 0 {
		s.cfg.putFrame(s.frame, s.mixer.Mix(s.cfg.SampleRate))
		c := copy(p[n:], s.frame)
		s.pending = s.frame[c:]
		n += c
	}

	return n, nil
}

func (s *Stream) fail(r any) error {
	err := fmt.Errorf("%w: %v", ErrSourcePanicked, r)
	s.err.Store(&err)
	s.pending = nil

	s.logger.Error("audio stream stopped",
		slog.String("error", err.Error()),
		slog.Uint64("sample_rate", uint64(s.cfg.SampleRate)),
		slog.Int("channels", s.cfg.Channels),
	)
	return err
}
