// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audsynth/device"
	"github.com/ik5/audsynth/envelope"
	"github.com/ik5/audsynth/instrument"
	"github.com/ik5/audsynth/sampler"
)

const envPrefix = "AUDSYNTH_"

// Device backends.
const (
	BackendOto      = "oto"
	BackendHeadless = "headless"
	BackendWAV      = "wav"
)

type DeviceConfig struct {
	Backend    string `yaml:"backend"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	Format     string `yaml:"format"`
	BufferMS   int    `yaml:"buffer_ms"`
	WAVPath    string `yaml:"wav_path"`
}

type EngineConfig struct {
	DispatchIntervalMS int `yaml:"dispatch_interval_ms"`
	RequestBuffer      int `yaml:"request_buffer"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type PointConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type CurveConfig struct {
	DurationMS    int           `yaml:"duration_ms"`
	Interpolation string        `yaml:"interpolation"`
	Points        []PointConfig `yaml:"points"`
}

type EnvelopeConfig struct {
	Attack  CurveConfig `yaml:"attack"`
	Hold    CurveConfig `yaml:"hold"`
	Decay   CurveConfig `yaml:"decay"`
	Sustain CurveConfig `yaml:"sustain"`
	Release CurveConfig `yaml:"release"`
}

type InstrumentConfig struct {
	Waveform string  `yaml:"waveform"`
	Gain     float64 `yaml:"gain"`
	// Clip replaces the oscillator with a decoded sample when set.
	Clip     string `yaml:"clip"`
	RootStep int    `yaml:"root_step"`
	Loop     bool   `yaml:"loop"`
}

type Config struct {
	Device     DeviceConfig     `yaml:"device"`
	Engine     EngineConfig     `yaml:"engine"`
	Logging    LoggingConfig    `yaml:"logging"`
	Envelope   EnvelopeConfig   `yaml:"envelope"`
	Instrument InstrumentConfig `yaml:"instrument"`
}

func ramp(ms int, from, to float32) CurveConfig {
	return CurveConfig{
		DurationMS:    ms,
		Interpolation: "linear",
		Points:        []PointConfig{{X: 0, Y: from}, {X: 1, Y: to}},
	}
}

func level(v float32) CurveConfig {
	return CurveConfig{Interpolation: "linear", Points: []PointConfig{{X: 1, Y: v}}}
}

func Default() Config {
	return Config{
		Device: DeviceConfig{
			Backend:    BackendOto,
			SampleRate: 44100,
			Channels:   2,
			Format:     "f32",
			BufferMS:   20,
			WAVPath:    "out.wav",
		},
		Engine: EngineConfig{
			DispatchIntervalMS: 10,
			RequestBuffer:      16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Envelope: EnvelopeConfig{
			Attack:  ramp(10, 0, 1),
			Hold:    level(1),
			Decay:   ramp(100, 1, 0.7),
			Sustain: level(0.7),
			Release: ramp(200, 0.7, 0),
		},
		Instrument: InstrumentConfig{
			Waveform: "sine",
			Gain:     0.5,
			RootStep: 60,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Device.Backend, "DEVICE_BACKEND")
	overrideInt(&cfg.Device.SampleRate, "DEVICE_SAMPLE_RATE")
	overrideInt(&cfg.Device.Channels, "DEVICE_CHANNELS")
	overrideString(&cfg.Device.Format, "DEVICE_FORMAT")
	overrideInt(&cfg.Device.BufferMS, "DEVICE_BUFFER_MS")
	overrideString(&cfg.Device.WAVPath, "DEVICE_WAV_PATH")
	overrideInt(&cfg.Engine.DispatchIntervalMS, "ENGINE_DISPATCH_INTERVAL_MS")
	overrideInt(&cfg.Engine.RequestBuffer, "ENGINE_REQUEST_BUFFER")
	overrideString(&cfg.Logging.Level, "LOG_LEVEL")
	overrideString(&cfg.Logging.Format, "LOG_FORMAT")
	overrideString(&cfg.Instrument.Waveform, "INSTRUMENT_WAVEFORM")
	overrideFloat(&cfg.Instrument.Gain, "INSTRUMENT_GAIN")
	overrideString(&cfg.Instrument.Clip, "INSTRUMENT_CLIP")
	overrideInt(&cfg.Instrument.RootStep, "INSTRUMENT_ROOT_STEP")
	overrideBool(&cfg.Instrument.Loop, "INSTRUMENT_LOOP")
}

func overrideString(target *string, key string) {
	if value, ok := os.LookupEnv(envPrefix + key); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, key string) {
	if value, ok := os.LookupEnv(envPrefix + key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, key string) {
	if value, ok := os.LookupEnv(envPrefix + key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, key string) {
	if value, ok := os.LookupEnv(envPrefix + key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

// Validate checks every section by running the converters.
func (c Config) Validate() error {
	switch c.Device.Backend {
	case BackendOto, BackendHeadless:
	case BackendWAV:
		if c.Device.WAVPath == "" {
			return fmt.Errorf("%w: device.wav_path must be set for the wav backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownBackend, c.Device.Backend)
	}
	if _, err := c.Device.Device(); err != nil {
		return fmt.Errorf("%w: device: %w", ErrInvalidConfig, err)
	}

	if c.Engine.DispatchIntervalMS <= 0 {
		return fmt.Errorf("%w: engine.dispatch_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Engine.RequestBuffer < 0 {
		return fmt.Errorf("%w: engine.request_buffer must not be negative", ErrInvalidConfig)
	}

	if _, err := c.Logging.level(); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownLogFormat, c.Logging.Format)
	}

	if _, err := c.Envelope.Envelope(); err != nil {
		return fmt.Errorf("%w: envelope: %w", ErrInvalidConfig, err)
	}

	if _, err := sampler.ParseWaveform(c.Instrument.Waveform); err != nil {
		return fmt.Errorf("%w: instrument: %w", ErrInvalidConfig, err)
	}
	if c.Instrument.Gain < 0 {
		return fmt.Errorf("%w: instrument.gain must not be negative", ErrInvalidConfig)
	}
	if c.Instrument.RootStep < 0 || c.Instrument.RootStep > 127 {
		return fmt.Errorf("%w: instrument.root_step must be between 0 and 127", ErrInvalidConfig)
	}
	return nil
}

// Device converts the device section.
func (d DeviceConfig) Device() (device.Config, error) {
	format, err := device.ParseFormat(d.Format)
	if err != nil {
		return device.Config{}, err
	}
	if d.SampleRate <= 0 {
		return device.Config{}, device.ErrInvalidSampleRate
	}

	cfg := device.Config{
		SampleRate: uint32(d.SampleRate),
		Channels:   d.Channels,
		Format:     format,
		BufferSize: time.Duration(d.BufferMS) * time.Millisecond,
	}
	return cfg, cfg.Validate()
}

// DispatchInterval returns the idle tick of the dispatch goroutine.
func (e EngineConfig) DispatchInterval() time.Duration {
	return time.Duration(e.DispatchIntervalMS) * time.Millisecond
}

// Curve converts one curve.
func (c CurveConfig) Curve() (envelope.CurveConfig, error) {
	interp := envelope.Linear
	if c.Interpolation != "" {
		var err error
		if interp, err = envelope.ParseInterpolation(c.Interpolation); err != nil {
			return envelope.CurveConfig{}, err
		}
	}

	points := make([]envelope.Point, len(c.Points))
	for i, p := range c.Points {
		points[i] = envelope.Point{X: p.X, Y: p.Y}
	}

	out := envelope.CurveConfig{
		Duration:      time.Duration(c.DurationMS) * time.Millisecond,
		Points:        points,
		Interpolation: interp,
	}
	return out, out.Validate()
}

// Envelope converts the five curves.
func (e EnvelopeConfig) Envelope() (envelope.Config, error) {
	var (
		out envelope.Config
		err error
	)
	curves := []struct {
		name string
		in   CurveConfig
		out  *envelope.CurveConfig
	}{
		{"attack", e.Attack, &out.Attack},
		{"hold", e.Hold, &out.Hold},
		{"decay", e.Decay, &out.Decay},
		{"sustain", e.Sustain, &out.Sustain},
		{"release", e.Release, &out.Release},
	}
	for _, c := range curves {
		if *c.out, err = c.in.Curve(); err != nil {
			return envelope.Config{}, fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return out, nil
}

// Synth builds the oscillator tone generator described by the instrument
// and envelope sections.
func (c Config) Synth() (instrument.Synth, error) {
	wave, err := sampler.ParseWaveform(c.Instrument.Waveform)
	if err != nil {
		return instrument.Synth{}, err
	}
	env, err := c.Envelope.Envelope()
	if err != nil {
		return instrument.Synth{}, err
	}
	return instrument.Synth{
		Waveform: wave,
		Envelope: env,
		Gain:     float32(c.Instrument.Gain),
	}, nil
}
