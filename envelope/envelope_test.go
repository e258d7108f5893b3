// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// One frame per second keeps frame counts equal to durations in seconds.
const unitRate = 1

func scenarioConfig() Config {
	return Config{
		Attack:  Ramp(10*time.Second, 0, 1),
		Decay:   Ramp(5*time.Second, 1, 0.5),
		Sustain: Level(0.5),
		Release: Ramp(10*time.Second, 0.5, 0),
	}
}

type step struct {
	stage Stage
	value float32
}

func run(t *testing.T, e *Envelope, n int) []step {
	t.Helper()

	out := make([]step, 0, n)
	for i := 0; i < n; i++ {
		v, ok := e.Next(unitRate)
		if !ok {
			t.Fatalf("Next() #%d returned none in stage %v", i+1, e.Stage())
		}
		out = append(out, step{stage: e.Stage(), value: v})
	}
	return out
}

func TestEnvelope_FullLifecycle(t *testing.T) {
	t.Parallel()

	e := New(scenarioConfig(), nil)

	attack := run(t, e, 10)
	for i, s := range attack {
		if s.stage != Attack {
			t.Fatalf("call %d stage = %v, want attack", i+1, s.stage)
		}
		if i > 0 && s.value <= attack[i-1].value {
			t.Errorf("attack not increasing at call %d: %v after %v", i+1, s.value, attack[i-1].value)
		}
	}
	if attack[0].value != 0 {
		t.Errorf("attack starts at %v, want 0", attack[0].value)
	}
	if !approx(attack[9].value, 1) {
		t.Errorf("attack ends at %v, want 1", attack[9].value)
	}

	decay := run(t, e, 5)
	for i, s := range decay {
		if s.stage != Decay {
			t.Fatalf("decay call %d stage = %v, want decay", i+1, s.stage)
		}
		if i > 0 && s.value > decay[i-1].value {
			t.Errorf("decay increased at call %d", i+1)
		}
	}
	if !approx(decay[4].value, 0.5) {
		t.Errorf("decay ends at %v, want 0.5", decay[4].value)
	}

	sustain := run(t, e, 20)
	for _, s := range sustain {
		if s.stage != Sustain || s.value != 0.5 {
			t.Fatalf("sustain step = %+v, want sustain at 0.5", s)
		}
	}

	e.State().Stop()

	release := run(t, e, 10)
	if release[0].value != 0.5 {
		t.Errorf("release starts at %v, want 0.5", release[0].value)
	}
	for i, s := range release {
		if s.stage != Release {
			t.Fatalf("release call %d stage = %v, want release", i+1, s.stage)
		}
		if i > 0 && s.value > release[i-1].value {
			t.Errorf("release increased at call %d", i+1)
		}
	}
	if !approx(release[9].value, 0) {
		t.Errorf("release ends at %v, want 0", release[9].value)
	}

	if v, ok := e.Next(unitRate); ok {
		t.Fatalf("Next() after release = %v, want none", v)
	}
	if e.Stage() != Completed {
		t.Errorf("stage = %v, want completed", e.Stage())
	}
	if got := e.State().Load(); got != Stopped {
		t.Errorf("state = %v, want stopped", got)
	}
	<-e.State().Done()

	for i := 0; i < 5; i++ {
		if _, ok := e.Next(unitRate); ok {
			t.Fatal("completed envelope produced a value")
		}
	}
}

func TestEnvelope_ReleaseStartsAtLastValue(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Attack:  Ramp(2*time.Second, 0, 1),
		Hold:    CurveConfig{Duration: 4 * time.Second, Points: []Point{{X: 0, Y: 1}, {X: 1, Y: 1}}},
		Decay:   Ramp(5*time.Second, 1, 0.5),
		Sustain: Level(0.5),
		Release: Ramp(8*time.Second, 0.5, 0),
	}

	tests := []struct {
		name      string
		calls     int
		wantStage Stage
	}{
		{name: "during hold", calls: 4, wantStage: Hold},
		{name: "during decay", calls: 8, wantStage: Decay},
		{name: "during sustain", calls: 20, wantStage: Sustain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New(cfg, nil)
			steps := run(t, e, tt.calls)
			last := steps[len(steps)-1]
			if last.stage != tt.wantStage {
				t.Fatalf("stage before stop = %v, want %v", last.stage, tt.wantStage)
			}

			e.State().Stop()
			v, ok := e.Next(unitRate)
			if !ok {
				t.Fatal("Next() after stop returned none")
			}
			if e.Stage() != Release {
				t.Errorf("stage after stop = %v, want release", e.Stage())
			}
			if v != last.value {
				t.Errorf("first release value = %v, want %v", v, last.value)
			}
		})
	}
}

func TestEnvelope_AttackIgnoresStop(t *testing.T) {
	t.Parallel()

	e := New(scenarioConfig(), nil)
	run(t, e, 3)
	e.State().Stop()

	rest := run(t, e, 7)
	for i, s := range rest {
		if s.stage != Attack {
			t.Fatalf("call %d after stop stage = %v, want attack", i+4, s.stage)
		}
	}
	peak := rest[len(rest)-1].value

	v, ok := e.Next(unitRate)
	if !ok {
		t.Fatal("Next() after attack returned none")
	}
	if e.Stage() != Release {
		t.Errorf("stage after attack = %v, want release", e.Stage())
	}
	if v != peak {
		t.Errorf("first release value = %v, want attack peak %v", v, peak)
	}
}

func TestEnvelope_StageOrder(t *testing.T) {
	t.Parallel()

	cfg := ADSR(3*time.Second, 3*time.Second, 1, 0.4, 3*time.Second)
	cfg.Hold = CurveConfig{Duration: 2 * time.Second, Points: []Point{{X: 0, Y: 1}, {X: 1, Y: 1}}}

	e := New(cfg, nil)
	var stages []Stage
	for i := 0; i < 40; i++ {
		if i == 20 {
			e.State().Stop()
		}
		if _, ok := e.Next(unitRate); !ok {
			break
		}
		if n := len(stages); n == 0 || stages[n-1] != e.Stage() {
			stages = append(stages, e.Stage())
		}
	}

	want := []Stage{Attack, Hold, Decay, Sustain, Release}
	if len(stages) != len(want) {
		t.Fatalf("visited %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("visited %v, want %v", stages, want)
		}
	}
}

func TestEnvelope_SustainPedalHoldsPlateau(t *testing.T) {
	t.Parallel()

	e := New(scenarioConfig(), nil)
	run(t, e, 15)
	e.State().Sustain()

	for _, s := range run(t, e, 100) {
		if s.stage != Sustain || s.value != 0.5 {
			t.Fatalf("sustained step = %+v, want sustain at 0.5", s)
		}
	}
}

func TestEnvelope_SharedState(t *testing.T) {
	t.Parallel()

	state := NewState()
	e := New(scenarioConfig(), state)
	if e.State() != state {
		t.Fatal("State() does not return the shared state")
	}

	run(t, e, 16)
	state.Stop()
	for {
		if _, ok := e.Next(unitRate); !ok {
			break
		}
	}
	if !state.IsStopped() {
		t.Errorf("shared state = %v, want stopped", state.Load())
	}
}

func TestEnvelope_LogsStageChanges(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := New(scenarioConfig(), nil, WithLogger(logger))
	run(t, e, 12)

	out := buf.String()
	if !strings.Contains(out, "from=attack") || !strings.Contains(out, "to=decay") {
		t.Errorf("missing attack to decay transition in log:\n%s", out)
	}
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	for s, want := range map[Stage]string{
		Attack:    "attack",
		Hold:      "hold",
		Decay:     "decay",
		Sustain:   "sustain",
		Release:   "release",
		Completed: "completed",
		Stage(9):  "Stage(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func BenchmarkEnvelope_Next(b *testing.B) {
	cfg := ADSR(5*time.Millisecond, 50*time.Millisecond, 1, 0.6, 200*time.Millisecond)
	e := New(cfg, nil)

	b.ReportAllocs()
	for b.Loop() {
		if _, ok := e.Next(48000); !ok {
			e = New(cfg, nil)
		}
	}
}
