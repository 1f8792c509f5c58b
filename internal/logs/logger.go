package logs

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	Logger  zerolog.Logger
	logFile *os.File
	console io.Writer
	mu      sync.Mutex
)

// Until Initialize is called nothing is written anywhere, so importing the
// package never leaves stray log files behind.
func init() {
	Logger = zerolog.Nop()
}

// Initialize points the logger at debug.log inside logDir.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Error().Err(err).Str("path", logPath).Msg("failed to open log file")
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	rebuild()

	Logger.Debug().Str("path", logPath).Msg("logger initialized")
	return nil
}

// EnableConsole mirrors log output to stderr in human-readable form.
// Only call this for commands that do not take over the terminal.
func EnableConsole(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()

	console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	zerolog.SetGlobalLevel(level)
	rebuild()
}

func rebuild() {
	var writers []io.Writer
	if logFile != nil {
		writers = append(writers, logFile)
	}
	if console != nil {
		writers = append(writers, console)
	}
	if len(writers) == 0 {
		Logger = zerolog.Nop()
		return
	}
	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("app", "traynote").
		Logger()
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		rebuild()
		return err
	}
	return nil
}
