// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process, so it is opened once and shared
// by every device with the same configuration.
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoConfig Config
)

func otoFormat(f Format) (oto.Format, error) {
	switch f {
	case Float32:
		return oto.FormatFloat32LE, nil
	case Int16:
		return oto.FormatSignedInt16LE, nil
	default:
		return 0, fmt.Errorf("%w: oto cannot play %v", ErrUnsupportedFormat, f)
	}
}

func otoContext(cfg Config) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoConfig != cfg {
			return nil, ErrContextInUse
		}
		if err := otoCtx.Resume(); err != nil {
			return nil, fmt.Errorf("resuming audio context: %w", err)
		}
		return otoCtx, nil
	}

	format, err := otoFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.Channels,
		Format:       format,
		BufferSize:   cfg.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio context: %w", err)
	}
	<-ready

	otoCtx, otoConfig = ctx, cfg
	return ctx, nil
}

// OtoDevice plays a Stream on the system audio output.
type OtoDevice struct {
	ctx    *oto.Context
	player *oto.Player
	stream *Stream
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// OpenOto opens the system output and starts pulling frames from m.
// Unsigned 16-bit output is not available through oto.
func OpenOto(m Mixer, cfg Config, opts ...Option) (*OtoDevice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := otoFormat(cfg.Format); err != nil {
		return nil, err
	}

	stream, err := NewStream(m, cfg, opts...)
	if err != nil {
		return nil, err
	}

	ctx, err := otoContext(cfg)
	if err != nil {
		return nil, err
	}

	d := &OtoDevice{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
		logger: newSettings(opts).logger,
	}
	d.player.Play()

	d.logger.Info("audio output opened",
		slog.Uint64("sample_rate", uint64(cfg.SampleRate)),
		slog.Int("channels", cfg.Channels),
		slog.String("format", cfg.Format.String()),
	)
	return d, nil
}

// Config returns the output configuration.
func (d *OtoDevice) Config() Config { return d.stream.Config() }

// Err reports a stream or player failure.
func (d *OtoDevice) Err() error {
	if err := d.stream.Err(); err != nil {
		return err
	}
	if err := d.ctx.Err(); err != nil {
		return err
	}
	return d.player.Err()
}

// Close stops playback and suspends the shared context.
func (d *OtoDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending audio context: %w", err)
	}
	return nil
}
