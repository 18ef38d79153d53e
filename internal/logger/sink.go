package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"xbox11/internal/config"
)

var (
	ErrInit               = errors.New("logger init")
	ErrAlreadyInitialized = fmt.Errorf("%w: already initialized", ErrInit)
)

var initialized atomic.Bool

// Init configures the process-wide logger from cfg. It succeeds at most once
// per process; later calls fail with ErrAlreadyInitialized. A failed call
// does not count.
func Init(cfg config.Log) (*ZerologAdapter, error) {
	if !initialized.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}
	log, err := New(cfg, os.Stderr)
	if err != nil {
		initialized.Store(false)
		return nil, err
	}
	return log, nil
}

// New builds a logger writing every entry at or above cfg.Level to a rotating
// file and mirroring entries at or above cfg.ConsoleLevel to console.
func New(cfg config.Log, console io.Writer) (*ZerologAdapter, error) {
	fileLevel, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	consoleLevel, err := parseLevel(cfg.ConsoleLevel)
	if err != nil {
		return nil, err
	}

	path, err := prepareFile(cfg)
	if err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	writer := zerolog.MultiLevelWriter(
		levelFilter{w: file, min: fileLevel},
		levelFilter{w: newConsoleWriter(console), min: consoleLevel},
	)

	adapter := NewZerolog(writer, min(fileLevel, consoleLevel))
	adapter.closer = file
	return adapter, nil
}

func parseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.NoLevel, fmt.Errorf("%w: empty level", ErrInit)
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: parse level %q: %w", ErrInit, s, err)
	}
	return level, nil
}

// prepareFile creates the log directory and probes the log file in append
// mode, so an unwritable target fails here rather than on the first write.
func prepareFile(cfg config.Log) (string, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create log dir: %w", ErrInit, err)
	}

	name := cfg.Basename
	if cfg.Suffix != "" {
		name += "." + cfg.Suffix
	}
	path := filepath.Join(cfg.Dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: open log file: %w", ErrInit, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close log file: %w", ErrInit, err)
	}
	return path, nil
}

// levelFilter drops entries below min before they reach w.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}
