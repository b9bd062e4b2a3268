package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	logDir := filepath.Dir(LogPath(configDir))
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantWarn  bool
	}{
		{name: "normal mode hides debug", cfg: Config{}, wantDebug: false, wantWarn: true},
		{name: "debug mode shows debug", cfg: Config{Debug: true}, wantDebug: true, wantWarn: true},
		{name: "explicit level wins", cfg: Config{Debug: true, Level: "error"}, wantDebug: false, wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.cfg)
			l.Debug("debug-line")
			l.Warn("warn-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn-line"); got != tt.wantWarn {
				t.Errorf("warn line present = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}
