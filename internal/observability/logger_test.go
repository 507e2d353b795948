package observability

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Level(t *testing.T) {
	log, err := NewLogger("debug")
	if err != nil {
		t.Fatalf("build logger: %s", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level enabled")
	}
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := NewLogger("verbose")
	if err != nil {
		t.Fatalf("build logger: %s", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level disabled")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level enabled")
	}
}
