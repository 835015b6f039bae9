package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// Options controls where a logger writes to.
type Options struct {
	// Console receives the human readable output. Defaults to os.Stderr.
	Console io.Writer
	// NoColor disables ANSI colors on the console writer.
	NoColor bool
	// LogFile is the path of the append-only log file. Empty selects
	// DefaultLogFile(); "-" disables file logging.
	LogFile string
}

// LevelFor maps the -v count of the command line to a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New builds the process logger for the given verbosity level.
// It writes to both the console and a log file. The returned logger is meant
// to be handed down explicitly; nothing here touches zerolog's global logger.
func New(verbosity int, opts Options) zerolog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	writers := []io.Writer{consoleWriter}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = DefaultLogFile()
	}

	var fileErr error
	if logFile != "-" {
		var fh *os.File
		fh, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, fh)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(LevelFor(verbosity)).
		With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	logger.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
	return logger
}

// Component returns a logger tagged with the given component name
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// DefaultLogFile returns the path to the log file
// It respects XDG_STATE_HOME if set, otherwise uses ~/.local/state/viur/
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "viur.log"
	}
	return filepath.Join(stateHome, "viur", "viur.log")
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
