// Package executil runs external commands.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs commands.
type Executor interface {
	Run(ctx context.Context, cmd string, args ...string) error
}

// RealExecutor runs commands with os/exec. Arguments are passed directly to
// the process, never through a shell.
type RealExecutor struct{}

// Run executes cmd and waits for it. On failure, stderr is returned as the
// error message, capped at 500 bytes so noisy output cannot flood the UI.
// The original *exec.ExitError is preserved via wrapping.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) error {
	c := exec.CommandContext(ctx, cmd, args...)
	var buf bytes.Buffer
	c.Stdout = io.Discard
	c.Stderr = &limitedWriter{buf: &buf, max: maxStderrLen}
	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(buf.String())
		if msg != "" {
			return fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return fmt.Errorf("exec %s: %w", cmd, err)
	}
	return nil
}
