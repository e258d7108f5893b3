// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const headlessPeriod = 10 * time.Millisecond

// HeadlessDevice pulls the stream at real time pace and throws the bytes
// away. It keeps voices advancing where no sound card is available.
type HeadlessDevice struct {
	stream *Stream
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// OpenHeadless starts pulling frames from m.
func OpenHeadless(m Mixer, cfg Config, opts ...Option) (*HeadlessDevice, error) {
	stream, err := NewStream(m, cfg, opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &HeadlessDevice{
		stream: stream,
		logger: newSettings(opts).logger,
		cancel: cancel,
	}

	d.wg.Add(1)
	go d.run(ctx)

	d.logger.Info("headless audio output opened",
		slog.Uint64("sample_rate", uint64(cfg.SampleRate)),
		slog.Int("channels", cfg.Channels),
	)
	return d, nil
}

func (d *HeadlessDevice) run(ctx context.Context) {
	defer d.wg.Done()

	cfg := d.stream.Config()
	buf := make([]byte, max(1, cfg.Frames(headlessPeriod))*cfg.FrameSize())

	ticker := time.NewTicker(headlessPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.stream.Read(buf); err != nil {
				return
			}
		}
	}
}

// Config returns the output configuration.
func (d *HeadlessDevice) Config() Config { return d.stream.Config() }

// Err reports a stream failure.
func (d *HeadlessDevice) Err() error {
	return d.stream.Err()
}

// Close stops pulling frames.
func (d *HeadlessDevice) Close() error {
	d.once.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
	return nil
}
