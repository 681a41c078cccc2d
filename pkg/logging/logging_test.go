package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

func TestSetupHonoursLevelEnvVar(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		wantLevel zerolog.Level
	}{
		{"unset defaults to warn", "", zerolog.WarnLevel},
		{"info", "info", zerolog.InfoLevel},
		{"debug", "debug", zerolog.DebugLevel},
		{"trace", "trace", zerolog.TraceLevel},
		{"unrecognised defaults to warn", "verbose", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)
			xdg.Reload()
			defer xdg.Reload()

			if tt.envValue != "" {
				t.Setenv("LOOTSORT_LOG_LEVEL", tt.envValue)
			} else {
				t.Setenv("LOOTSORT_LOG_LEVEL", "")
			}

			Setup()

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Setup() level = %v, want %v", zerolog.GlobalLevel(), tt.wantLevel)
			}

			logPath := filepath.Join(tempDir, "lootsort", "lootsort.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("log file was not created at %s", logPath)
			}
		})
	}
}

func TestGet(t *testing.T) {
	logger := Get("sorting")
	logger.Info().Msg("vertex phase complete")
}
