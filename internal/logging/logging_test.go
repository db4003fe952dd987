package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"info", "console", zapcore.InfoLevel},
		{"debug", "json", zapcore.DebugLevel},
		{"warn", "", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("level %s should be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("level %s should be disabled", tt.want-1)
			}
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
