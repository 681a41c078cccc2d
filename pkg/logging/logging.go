package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level names accepted by the LOOTSORT_LOG_LEVEL environment variable,
// falling back to "warn" when unset or unrecognised.
var levelByName = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// Setup configures the global zerolog logger: console output plus a
// log file under the XDG state directory, appended to on every run. Unlike a CLI tool,
// this library has no verbosity flag of its own; callers (or the
// environment) control the level via LOOTSORT_LOG_LEVEL.
func Setup() {
	level, ok := levelByName[os.Getenv("LOOTSORT_LOG_LEVEL")]
	if !ok {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{consoleWriter}

	logFile := logFilePath()
	if handle, err := openLogFile(logFile); err == nil {
		writers = append(writers, handle)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if level <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}
}

// Get returns a logger scoped to one engine component, e.g.
// Get("sorting") or Get("condition").
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func logFilePath() string {
	return filepath.Join(xdg.StateHome, "lootsort", "lootsort.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
