// SPDX-License-Identifier: EPL-2.0

package manager

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audsynth/sampler"
)

func TestManager_IDWrapsOnOverflow(t *testing.T) {
	t.Parallel()

	m := New()
	defer m.Close()

	// nextID is read by dispatch only after it receives the request below.
	m.nextID = math.MaxUint64

	silent := sampler.Func(func(uint32) (sampler.Sample, bool) { return sampler.Sample{}, false })

	first, err := m.Play(context.Background(), silent)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	second, err := m.Play(context.Background(), silent)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if first.ID() != math.MaxUint64 || second.ID() != 0 {
		t.Errorf("ids = %d, %d, want MaxUint64 then 0", first.ID(), second.ID())
	}
}

func TestManager_PruneKeepsOrder(t *testing.T) {
	t.Parallel()

	m := &Manager{logger: slog.New(slog.DiscardHandler)}
	entries := make([]*entry, 5)
	for i := range entries {
		entries[i] = &entry{id: uint64(i), handle: &Handle{id: uint64(i)}}
	}
	entries[1].finished.Store(true)
	entries[3].handle.Release()
	m.entries.Store(&entries)

	m.prune()

	got := *m.entries.Load()
	want := []uint64{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("kept %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.id != want[i] {
			t.Errorf("entry %d id = %d, want %d", i, e.id, want[i])
		}
	}

	// The snapshot the audio goroutine may still hold is left untouched.
	if len(entries) != 5 || entries[1].id != 1 {
		t.Error("prune modified the previous snapshot")
	}
}

func TestManager_LogsRegistration(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := New(WithLogger(logger), WithIdleInterval(time.Millisecond))
	h, err := m.Play(context.Background(), sampler.Func(func(uint32) (sampler.Sample, bool) {
		return sampler.Sample{}, false
	}))
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	h.Release()

	deadline := time.Now().Add(2 * time.Second)
	for m.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	m.Close()

	out := buf.String()
	for _, msg := range []string{"sound registered", "sound pruned"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log is missing %q:\n%s", msg, out)
		}
	}
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	t.Parallel()

	m := New(WithIdleInterval(-time.Second), WithRequestBuffer(-1), WithLogger(nil))
	defer m.Close()

	if m.idle != DefaultIdleInterval {
		t.Errorf("idle = %v, want default", m.idle)
	}
	if cap(m.requests) != DefaultRequestBuffer {
		t.Errorf("request buffer = %d, want default", cap(m.requests))
	}
	if m.logger == nil {
		t.Error("logger is nil")
	}
}
