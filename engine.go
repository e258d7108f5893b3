// SPDX-License-Identifier: EPL-2.0

package audsynth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ik5/audsynth/clip"
	"github.com/ik5/audsynth/config"
	"github.com/ik5/audsynth/device"
	"github.com/ik5/audsynth/formats"
	"github.com/ik5/audsynth/instrument"
	"github.com/ik5/audsynth/manager"
)

// output is a real time backend pulling the mix.
type output interface {
	Err() error
	Close() error
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger replaces the logger built from the logging section.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Engine plays notes through a configured output.
type Engine struct {
	cfg    config.Config
	devCfg device.Config
	logger *slog.Logger

	manager    *manager.Manager
	instrument *instrument.VirtualInstrument
	out        output // nil for the wav backend

	renderMu  sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Open validates cfg and starts the engine. A nil tone is built from cfg
// with NewToneGenerator.
func Open(cfg config.Config, tone instrument.ToneGenerator, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		logger, err := cfg.Logging.NewLogger(os.Stderr)
		if err != nil {
			return nil, err
		}
		o.logger = logger
	}

	devCfg, err := cfg.Device.Device()
	if err != nil {
		return nil, err
	}

	if tone == nil {
		if tone, err = NewToneGenerator(cfg, o.logger); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:    cfg,
		devCfg: devCfg,
		logger: o.logger,
		manager: manager.New(
			manager.WithLogger(o.logger.With(slog.String("component", "manager"))),
			manager.WithIdleInterval(cfg.Engine.DispatchInterval()),
			manager.WithRequestBuffer(cfg.Engine.RequestBuffer),
		),
	}
	e.instrument = instrument.New(e.manager, tone,
		instrument.WithLogger(o.logger.With(slog.String("component", "instrument"))),
	)

	devOpts := []device.Option{device.WithLogger(o.logger.With(slog.String("component", "device")))}
	switch cfg.Device.Backend {
	case config.BackendOto:
		e.out, err = device.OpenOto(e.manager, devCfg, devOpts...)
	case config.BackendHeadless:
		e.out, err = device.OpenHeadless(e.manager, devCfg, devOpts...)
	}
	if err != nil {
		e.manager.Close()
		return nil, fmt.Errorf("opening %s output: %w", cfg.Device.Backend, err)
	}

	e.logger.Info("engine started",
		slog.String("backend", cfg.Device.Backend),
		slog.Uint64("sample_rate", uint64(devCfg.SampleRate)),
		slog.Int("channels", devCfg.Channels),
	)
	return e, nil
}

// NewToneGenerator builds the tone generator described by cfg: a clip
// player when instrument.clip names a file, an oscillator otherwise.
func NewToneGenerator(cfg config.Config, logger *slog.Logger) (instrument.ToneGenerator, error) {
	if cfg.Instrument.Clip == "" {
		synth, err := cfg.Synth()
		if err != nil {
			return nil, err
		}
		synth.Logger = logger
		return synth, nil
	}

	env, err := cfg.Envelope.Envelope()
	if err != nil {
		return nil, err
	}
	c, err := formats.NewRegistry().Open(cfg.Instrument.Clip)
	if err != nil {
		return nil, fmt.Errorf("loading instrument clip: %w", err)
	}

	logger.Debug("instrument clip loaded",
		slog.String("path", cfg.Instrument.Clip),
		slog.Int("frames", c.Frames()),
		slog.Duration("duration", c.Duration()),
	)
	return clip.ToneGenerator{
		Clip:     c,
		RootStep: uint8(cfg.Instrument.RootStep),
		Envelope: env,
		Gain:     float32(cfg.Instrument.Gain),
		Loop:     cfg.Instrument.Loop,
	}, nil
}

// Config returns the configuration the engine was opened with.
func (e *Engine) Config() config.Config { return e.cfg }

// PlayNote starts a voice for note, replacing one already at its step.
func (e *Engine) PlayNote(ctx context.Context, note instrument.Note) error {
	return e.instrument.PlayNote(ctx, note)
}

// StopNote releases the key at step.
func (e *Engine) StopNote(step uint8) {
	e.instrument.StopNote(step)
}

// SetSustain presses or lifts the sustain pedal.
func (e *Engine) SetSustain(active bool) {
	e.instrument.SetSustain(active)
}

// Notes lists the notes of the voices the instrument still tracks.
func (e *Engine) Notes() []instrument.Note {
	return e.instrument.Notes()
}

// Voices returns the number of voices being mixed, release tails included.
func (e *Engine) Voices() int {
	return e.manager.Len()
}

// Err reports a failure of the real time output.
func (e *Engine) Err() error {
	if e.out == nil {
		return nil
	}
	return e.out.Err()
}

// Render mixes d worth of audio into a 16-bit WAV written to w. It is only
// available with the wav backend.
func (e *Engine) Render(w io.WriteSeeker, d time.Duration) error {
	if e.out != nil {
		return ErrRealtimeBackend
	}

	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	return device.RenderWAV(w, e.manager, e.devCfg, e.devCfg.Frames(d))
}

// RenderFile is Render into the file named by device.wav_path.
func (e *Engine) RenderFile(d time.Duration) error {
	f, err := os.Create(e.cfg.Device.WAVPath)
	if err != nil {
		return fmt.Errorf("creating wav output: %w", err)
	}

	if err := e.Render(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases every voice and waits for the release tails until ctx
// ends, then stops the output and the manager. With the wav backend
// nothing advances the tails, so voices are cut at once.
func (e *Engine) Close(ctx context.Context) error {
	e.closeOnce.Do(func() {
		if e.out == nil {
			cut, cancel := context.WithCancel(ctx)
			cancel()
			ctx = cut
		}

		err := e.instrument.Close(ctx)
		if e.out == nil && errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			e.logger.Warn("voices cut before their release ended", slog.String("error", err.Error()))
		}

		var errs []error
		errs = append(errs, err)
		if e.out != nil {
			errs = append(errs, e.out.Close(), e.out.Err())
		}
		errs = append(errs, e.manager.Close())

		e.closeErr = errors.Join(errs...)
		e.logger.Info("engine stopped")
	})
	return e.closeErr
}
