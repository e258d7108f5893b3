// SPDX-License-Identifier: EPL-2.0

package device

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/ik5/audsynth/internal/synthtest"
	"github.com/ik5/audsynth/sampler"
)

type panicMixer struct{}

func (panicMixer) Mix(uint32) sampler.Sample { panic("broken voice") }

func TestStream_ChannelLayout(t *testing.T) {
	t.Parallel()

	frame := sampler.Sample{Left: 0.5, Right: -0.25}

	t.Run("mono averages", func(t *testing.T) {
		t.Parallel()

		m := &synthtest.SequenceMixer{Samples: []sampler.Sample{frame}}
		s, err := NewStream(m, Config{SampleRate: 48000, Channels: 1, Format: Float32})
		if err != nil {
			t.Fatalf("NewStream() error = %v", err)
		}

		buf := make([]byte, 4)
		if _, err := io.ReadFull(s, buf); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf))
		if got != 0.125 {
			t.Errorf("mono sample = %v, want 0.125", got)
		}
	})

	t.Run("stereo writes left then right", func(t *testing.T) {
		t.Parallel()

		m := &synthtest.SequenceMixer{Samples: []sampler.Sample{frame}}
		s, err := NewStream(m, Config{SampleRate: 48000, Channels: 2, Format: Float32})
		if err != nil {
			t.Fatalf("NewStream() error = %v", err)
		}

		buf := make([]byte, 8)
		if _, err := io.ReadFull(s, buf); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		left := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
		if left != 0.5 || right != -0.25 {
			t.Errorf("stereo frame = %v, %v, want 0.5, -0.25", left, right)
		}
	})

	t.Run("three channels rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewStream(&synthtest.SequenceMixer{}, Config{SampleRate: 48000, Channels: 3, Format: Float32})
		if !errors.Is(err, ErrUnsupportedChannels) {
			t.Errorf("NewStream() error = %v, want ErrUnsupportedChannels", err)
		}
	})
}

func TestStream_Formats(t *testing.T) {
	t.Parallel()

	samples := []sampler.Sample{
		sampler.Mono(0),
		sampler.Mono(1),
		sampler.Mono(-1),
		sampler.Mono(2), // clamped
		sampler.Mono(0.5),
	}

	tests := []struct {
		format Format
		decode func([]byte) float64
		want   []float64
	}{
		{
			format: Float32,
			decode: func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) },
			want:   []float64{0, 1, -1, 1, 0.5},
		},
		{
			format: Int16,
			decode: func(b []byte) float64 { return float64(int16(binary.LittleEndian.Uint16(b))) },
			want:   []float64{0, 32767, -32767, 32767, 16383},
		},
		{
			format: Uint16,
			decode: func(b []byte) float64 { return float64(binary.LittleEndian.Uint16(b)) },
			want:   []float64{32768, 65535, 1, 65535, 49151},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			m := &synthtest.SequenceMixer{Samples: append([]sampler.Sample(nil), samples...)}
			s, err := NewStream(m, Config{SampleRate: 8000, Channels: 1, Format: tt.format})
			if err != nil {
				t.Fatalf("NewStream() error = %v", err)
			}

			size := tt.format.BytesPerSample()
			buf := make([]byte, len(samples)*size)
			if _, err := io.ReadFull(s, buf); err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			for i, want := range tt.want {
				if got := tt.decode(buf[i*size:]); got != want {
					t.Errorf("sample %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestStream_MixesOncePerFrame(t *testing.T) {
	t.Parallel()

	m := &synthtest.SequenceMixer{}
	s, err := NewStream(m, Config{SampleRate: 44100, Channels: 2, Format: Int16})
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}

	n, err := s.Read(make([]byte, 4*100))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 400 {
		t.Errorf("Read() = %d bytes, want 400", n)
	}
	if len(m.Rates) != 100 {
		t.Errorf("Mix called %d times for 100 frames", len(m.Rates))
	}
	for _, r := range m.Rates {
		if r != 44100 {
			t.Fatalf("Mix called with rate %d, want 44100", r)
		}
	}
}

func TestStream_SplitFrames(t *testing.T) {
	t.Parallel()

	var samples []sampler.Sample
	for i := 1; i <= 6; i++ {
		samples = append(samples, sampler.Sample{Left: float32(i) / 10, Right: -float32(i) / 10})
	}
	cfg := Config{SampleRate: 48000, Channels: 2, Format: Float32}

	whole := &synthtest.SequenceMixer{Samples: append([]sampler.Sample(nil), samples...)}
	ref, _ := NewStream(whole, cfg)
	want := make([]byte, 6*cfg.FrameSize())
	if _, err := io.ReadFull(ref, want); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	split := &synthtest.SequenceMixer{Samples: append([]sampler.Sample(nil), samples...)}
	s, _ := NewStream(split, cfg)
	var got bytes.Buffer
	for _, size := range []int{3, 7, 1, 13, 5, 19} {
		buf := make([]byte, size)
		n, err := s.Read(buf)
		if err != nil {
			t.Fatalf("Read(%d) error = %v", size, err)
		}
		got.Write(buf[:n])
	}

	if !bytes.Equal(got.Bytes()[:len(want)], want) {
		t.Error("reading with odd buffer sizes changed the byte stream")
	}
	if len(split.Rates) != (got.Len()+cfg.FrameSize()-1)/cfg.FrameSize() {
		t.Errorf("Mix called %d times for %d bytes", len(split.Rates), got.Len())
	}
}

func TestStream_RecoversPanic(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s, err := NewStream(panicMixer{}, Config{SampleRate: 48000, Channels: 2, Format: Float32}, WithLogger(logger))
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}

	if _, err := s.Read(make([]byte, 64)); !errors.Is(err, ErrSourcePanicked) {
		t.Fatalf("Read() error = %v, want ErrSourcePanicked", err)
	}
	if _, err := s.Read(make([]byte, 64)); !errors.Is(err, ErrSourcePanicked) {
		t.Errorf("second Read() error = %v, want ErrSourcePanicked", err)
	}
	if !errors.Is(s.Err(), ErrSourcePanicked) {
		t.Errorf("Err() = %v", s.Err())
	}
	if !strings.Contains(logs.String(), "broken voice") {
		t.Errorf("panic value not logged:\n%s", logs.String())
	}
}

func BenchmarkStream_Read(b *testing.B) {
	s, err := NewStream(&synthtest.SequenceMixer{}, Config{SampleRate: 48000, Channels: 2, Format: Int16})
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 4096)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := s.Read(buf); err != nil {
			b.Fatal(err)
		}
	}
}
