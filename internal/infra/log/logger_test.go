package log

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	l, err := New("warn")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn must be enabled")
	}
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	l := Must("loud")
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("fallback level should be info")
	}
}

func TestEmail_IsHashed(t *testing.T) {
	f := Email("user", "test@example.com")
	if strings.Contains(f.String, "example.com") || len(f.String) != 64 {
		t.Fatalf("email leaked or not a sha256 hex: %q", f.String)
	}
}
