// Package iojson reads and writes JSON for command line tools: input from a
// file flag or piped stdin, indented output, and a fixed error envelope.
package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by Reader.Read when neither a file nor piped
// stdin is available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use --file or pipe JSON input")

// Reader decodes a T from the file named by its flag or from stdin.
type Reader[T any] struct {
	path  string
	stdin *os.File
}

// Flag returns the --file flag bound to the reader.
func (r *Reader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON input (reads from stdin if not provided)",
		Destination: &r.path,
	}
}

// Read decodes the input.
func (r *Reader[T]) Read() (T, error) {
	var v T

	if r.path != "" {
		f, err := os.Open(r.path)
		if err != nil {
			return v, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		return Decode[T](f)
	}

	stdin := r.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return v, ErrNoInput
	}
	return Decode[T](stdin)
}

// Decode reads a single JSON value from rd.
func Decode[T any](rd io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(rd).Decode(&v); err != nil {
		return v, fmt.Errorf("decode JSON: %w", err)
	}
	return v, nil
}

// Error is the envelope written for failures in JSON mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Write prints obj to w as indented JSON. A value that cannot be encoded is
// reported to ew as an Error envelope instead.
func Write(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return WriteError(ew, "encode output", map[string]any{"json_error": err.Error()})
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteError prints an Error envelope to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		// data held something unencodable; keep the message at least
		bits, _ = json.Marshal(Error{Message: msg})
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}
