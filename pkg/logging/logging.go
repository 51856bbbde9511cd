package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the state directory and log file
const AppName = "devops-cli"

// SetupLogger configures the global logger based on verbosity level.
// Console output goes to stderr; a copy is appended to the state log file.
// Every line carries the run id of this invocation.
func SetupLogger(verbosity int) {
	setupLogger(verbosity, os.Stderr, getLogFilePath())
}

func setupLogger(verbosity int, console io.Writer, logFile string) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
	})

	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().
		Timestamp().
		Str("run", uuid.NewString()[:8]).
		Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns where SetupLogger writes the log file
func LogFilePath() string {
	return getLogFilePath()
}

// getLogFilePath respects XDG_STATE_HOME if set, otherwise uses ~/.local/state/devops-cli/
func getLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName + ".log"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppName, AppName+".log")
}

// openedLog is the handle SetupLogger last opened. Setting up again with the
// same path reuses it; a different path closes it first.
var openedLog struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// setupLogFile opens (or reuses) the log file, creating its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	openedLog.mu.Lock()
	defer openedLog.mu.Unlock()

	if openedLog.file != nil {
		if openedLog.path == logPath {
			return openedLog.file, nil
		}
		_ = openedLog.file.Close()
		openedLog.file = nil
		openedLog.path = ""
	}

	file, err := openLogFile(logPath)
	if err != nil {
		return nil, err
	}
	openedLog.path = logPath
	openedLog.file = file
	return file, nil
}

func openLogFile(logPath string) (*os.File, error) {
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

// LogCommand logs an external command about to run
func LogCommand(logger zerolog.Logger, cmd string, args []string, dir string) {
	logger.Info().
		Str("command", cmd).
		Strs("args", args).
		Str("workingDir", dir).
		Msg("Executing command")
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
