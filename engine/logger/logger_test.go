package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndRestore(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Named("session").Info("setup complete", zap.Int("renderables", 3))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if entries[0].LoggerName != "session" {
		t.Errorf("logger name = %q, want %q", entries[0].LoggerName, "session")
	}
	if got := entries[0].ContextMap()["renderables"]; got != int64(3) {
		t.Errorf("renderables field = %v, want 3", got)
	}

	Set(nil)
	if L() == nil {
		t.Fatal("L() returned nil after Set(nil)")
	}
}

func TestNew(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		l, err := New(verbose)
		if err != nil {
			t.Fatalf("New(%v) error: %v", verbose, err)
		}
		if got := l.Core().Enabled(zap.DebugLevel); got != verbose {
			t.Errorf("New(%v) debug enabled = %v, want %v", verbose, got, verbose)
		}
	}
}
