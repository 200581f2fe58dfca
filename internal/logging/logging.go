// Package logging builds the zerolog logger used across rota.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// Log rotation settings for the optional file sink.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// Options controls logger construction.
type Options struct {
	// Level is the configured zerolog level name. Empty means info.
	Level string

	// Verbose forces debug level, overriding Level.
	Verbose bool

	// Quiet forces warn level, overriding Level. Verbose wins over Quiet.
	Quiet bool

	// File is an optional log file path. When set, log entries also go to
	// a rotating file at this path.
	File string
}

// logFileWriter holds the file sink for cleanup during shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// globalMu protects concurrent writes to the zerolog global logger.
var globalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// Init creates the logger and installs it as the zerolog global. File sink
// failures are non-fatal; the logger falls back to console-only output.
func Init(opts Options) zerolog.Logger {
	writer := selectOutput()

	if opts.File != "" {
		fw, err := newFileWriter(opts.File)
		if err == nil {
			logFileWriter = fw
			writer = zerolog.MultiLevelWriter(writer, fw)
		}
	}

	return NewWithWriter(opts, writer)
}

// NewWithWriter creates the logger against a caller-supplied writer and
// installs it as the zerolog global. Intended for tests.
func NewWithWriter(opts Options, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(selectLevel(opts)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// Close closes the file sink if one was opened. Call during shutdown.
func Close() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// setGlobalLogger points the zerolog package-level logger at ours so code
// using log.Debug() etc gets the same formatting.
func setGlobalLogger(logger zerolog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	log.Logger = logger
}

// selectLevel resolves the effective level from flags and config.
func selectLevel(opts Options) zerolog.Level {
	switch {
	case opts.Verbose:
		return zerolog.DebugLevel
	case opts.Quiet:
		return zerolog.WarnLevel
	}
	if opts.Level != "" {
		if level, err := zerolog.ParseLevel(opts.Level); err == nil {
			return level
		}
	}
	return zerolog.InfoLevel
}

// selectOutput picks the console writer for interactive terminals and raw
// JSON on stderr otherwise, honoring NO_COLOR.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// newFileWriter creates the rotating file sink.
func newFileWriter(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, rotaerrors.Wrap(err, "failed to create log directory")
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}, nil
}
