// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxSize is the log file size above which New starts the file over.
const DefaultMaxSize int64 = 5 << 20

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error or fatal. Empty means info.
	Level string

	// File receives JSON lines. When empty, a human readable console
	// format is written to Console instead.
	File string

	// Console is the writer used when File is empty. Defaults to stderr.
	Console io.Writer

	// MaxSize caps the log file; an existing file larger than this is
	// truncated on open. Zero means DefaultMaxSize.
	MaxSize int64
}

// New returns a logger configured by opts and a func that releases the
// underlying file.
func New(opts Options) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(opts.Level); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("parse log level: %w", err)
		}
	}

	var writer io.Writer
	if opts.File == "" {
		out := opts.Console
		if out == nil {
			out = os.Stderr
		}
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	} else {
		f, err := openLogFile(opts.File, opts.MaxSize)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		writer = f
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

func openLogFile(path string, maxSize int64) (*os.File, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
