package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := New(tt.level, "json")
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if !log.Core().Enabled(tt.want) {
				t.Errorf("expected %v to be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
				t.Errorf("expected %v to be disabled", tt.want-1)
			}
		})
	}
}

func TestNewConsoleFormat(t *testing.T) {
	if _, err := New("info", "text"); err != nil {
		t.Fatalf("new: %v", err)
	}
}
