package profiler

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/synchronizer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsPerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(zap.New(core)))

	for i := 0; i < 9; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		if p.Tick(synchronizer.Stats{Bindings: 3}) {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}

	clock.t = clock.t.Add(100 * time.Millisecond)
	if !p.Tick(synchronizer.Stats{Bindings: 3, Skipped: 1, LightRemoved: true}) {
		t.Fatal("tick at one second should report")
	}

	r := p.Last()
	if r.FPS < 9.99 || r.FPS > 10.01 {
		t.Fatalf("fps = %v, want 10", r.FPS)
	}
	if r.BindingsPerSec < 29.99 || r.BindingsPerSec > 30.01 {
		t.Fatalf("bindings/s = %v, want 30", r.BindingsPerSec)
	}
	if r.Skipped != 1 || r.LightToggles != 1 {
		t.Fatalf("report = %+v", r)
	}
	if logs.FilterMessage("profile").Len() != 1 {
		t.Fatal("expected one profile log entry")
	}

	clock.t = clock.t.Add(500 * time.Millisecond)
	if p.Tick(synchronizer.Stats{}) {
		t.Fatal("counters should restart after a report")
	}
}
