package logutils

import (
	"bytes"
	"io"
	"sync"
)

// Deferred passes writes through to an underlying writer until Hold is
// called. While held, writes are buffered; Release flushes the buffer and
// resumes pass-through. It is used to keep console log lines off the screen
// while a full-screen program owns the terminal.
type Deferred struct {
	mu   sync.Mutex
	out  io.Writer
	buf  bytes.Buffer
	held bool
}

// NewDeferred wraps out.
func NewDeferred(out io.Writer) *Deferred {
	return &Deferred{out: out}
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return d.buf.Write(p)
	}
	return d.out.Write(p)
}

// Hold starts buffering.
func (d *Deferred) Hold() {
	d.mu.Lock()
	d.held = true
	d.mu.Unlock()
}

// Release writes everything buffered since Hold and stops buffering.
func (d *Deferred) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(d.out)
	return err
}
