package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WithAttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "form_controller")

	logger.Warn("submission throttled", "session_id", "abc")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %s", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["component"] != "form_controller" {
		t.Errorf("expected component field, got %v", fields["component"])
	}
	if fields["session_id"] != "abc" {
		t.Errorf("expected session_id field, got %v", fields["session_id"])
	}
}

func TestAsZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	AsZap(logger).Info("through zap")

	if logs.Len() != 1 {
		t.Fatalf("expected unwrapped zap logger to share the core, got %d entries", logs.Len())
	}
}

type otherLogger struct{ Logger }

func TestAsZap_ForeignImplementation(t *testing.T) {
	if AsZap(otherLogger{}) == nil {
		t.Fatal("expected a no-op zap logger, got nil")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Info("discarded")
	logger.With("k", "v").Error("discarded")
}
