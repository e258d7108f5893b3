// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audsynth/device"
	"github.com/ik5/audsynth/envelope"
	"github.com/ik5/audsynth/sampler"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device.Backend != BackendOto || cfg.Device.SampleRate != 44100 {
		t.Fatalf("unexpected device defaults: %+v", cfg.Device)
	}
	if got := cfg.Engine.DispatchInterval(); got != 10*time.Millisecond {
		t.Fatalf("expected 10ms dispatch interval, got %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth.yaml")
	data := `
device:
  backend: wav
  sample_rate: 22050
  channels: 1
  format: i16
  wav_path: render.wav
logging:
  level: debug
  format: json
envelope:
  release:
    duration_ms: 50
    interpolation: cubic
    points: [{x: 0, y: 0.7}, {x: 0.5, y: 0.2}, {x: 1, y: 0}]
instrument:
  waveform: square
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev, err := cfg.Device.Device()
	if err != nil {
		t.Fatalf("Device() error = %v", err)
	}
	want := device.Config{SampleRate: 22050, Channels: 1, Format: device.Int16, BufferSize: 20 * time.Millisecond}
	if dev != want {
		t.Fatalf("Device() = %+v, want %+v", dev, want)
	}

	env, err := cfg.Envelope.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error = %v", err)
	}
	if env.Release.Duration != 50*time.Millisecond || env.Release.Interpolation != envelope.Cubic || len(env.Release.Points) != 3 {
		t.Fatalf("unexpected release curve: %+v", env.Release)
	}
	// sections missing from the file keep their defaults
	if env.Attack.Duration != 10*time.Millisecond {
		t.Fatalf("expected default attack, got %+v", env.Attack)
	}

	synth, err := cfg.Synth()
	if err != nil {
		t.Fatalf("Synth() error = %v", err)
	}
	if synth.Waveform != sampler.Square || synth.Gain != 0.5 {
		t.Fatalf("unexpected synth: %+v", synth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("device: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUDSYNTH_DEVICE_BACKEND", "headless")
	t.Setenv("AUDSYNTH_DEVICE_SAMPLE_RATE", "48000")
	t.Setenv("AUDSYNTH_DEVICE_CHANNELS", "1")
	t.Setenv("AUDSYNTH_DEVICE_FORMAT", "u16")
	t.Setenv("AUDSYNTH_ENGINE_DISPATCH_INTERVAL_MS", "5")
	t.Setenv("AUDSYNTH_LOG_LEVEL", "warn")
	t.Setenv("AUDSYNTH_INSTRUMENT_WAVEFORM", "triangle")
	t.Setenv("AUDSYNTH_INSTRUMENT_GAIN", "0.25")
	t.Setenv("AUDSYNTH_INSTRUMENT_LOOP", "true")
	t.Setenv("AUDSYNTH_INSTRUMENT_ROOT_STEP", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Device.Backend != BackendHeadless || cfg.Device.SampleRate != 48000 || cfg.Device.Channels != 1 || cfg.Device.Format != "u16" {
		t.Fatalf("expected device overrides, got %+v", cfg.Device)
	}
	if cfg.Engine.DispatchIntervalMS != 5 {
		t.Fatalf("expected dispatch interval override")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected log level override")
	}
	if cfg.Instrument.Waveform != "triangle" || cfg.Instrument.Gain != 0.25 || !cfg.Instrument.Loop {
		t.Fatalf("expected instrument overrides, got %+v", cfg.Instrument)
	}
	if cfg.Instrument.RootStep != 60 {
		t.Fatalf("expected unparsable root step to be ignored, got %d", cfg.Instrument.RootStep)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Device.Backend = "alsa" }, want: ErrUnknownBackend},
		{name: "wav without path", mutate: func(c *Config) {
			c.Device.Backend = BackendWAV
			c.Device.WAVPath = ""
		}, want: ErrInvalidConfig},
		{name: "three channels", mutate: func(c *Config) { c.Device.Channels = 3 }, want: device.ErrUnsupportedChannels},
		{name: "unknown format", mutate: func(c *Config) { c.Device.Format = "f64" }, want: device.ErrUnsupportedFormat},
		{name: "zero rate", mutate: func(c *Config) { c.Device.SampleRate = 0 }, want: device.ErrInvalidSampleRate},
		{name: "zero dispatch interval", mutate: func(c *Config) { c.Engine.DispatchIntervalMS = 0 }, want: ErrInvalidConfig},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "chatty" }, want: ErrInvalidConfig},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, want: ErrUnknownLogFormat},
		{name: "negative duration", mutate: func(c *Config) { c.Envelope.Decay.DurationMS = -1 }, want: envelope.ErrNegativeDuration},
		{name: "unknown interpolation", mutate: func(c *Config) { c.Envelope.Hold.Interpolation = "bezier" }, want: ErrInvalidConfig},
		{name: "unknown waveform", mutate: func(c *Config) { c.Instrument.Waveform = "noise" }, want: sampler.ErrUnknownWaveform},
		{name: "negative gain", mutate: func(c *Config) { c.Instrument.Gain = -1 }, want: ErrInvalidConfig},
		{name: "root step out of range", mutate: func(c *Config) { c.Instrument.RootStep = 128 }, want: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v does not wrap ErrInvalidConfig", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept", "id", 7)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"id":7`) {
		t.Errorf("unexpected json output: %s", out)
	}

	if _, err := (LoggingConfig{Level: "info", Format: "xml"}).NewLogger(&buf); !errors.Is(err, ErrUnknownLogFormat) {
		t.Errorf("NewLogger(xml) error = %v, want ErrUnknownLogFormat", err)
	}
}
