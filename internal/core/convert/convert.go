// Package convert turns the current search matches of a view into
// annotations through the document rendering engine.
package convert

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/lectern/internal/core/reader"
)

var (
	// ErrInFlight is returned when a conversion is already running.
	ErrInFlight = errors.New("conversion already in progress")
	// ErrNoEngine is returned when no rendering engine is bound to the view.
	ErrNoEngine = errors.New("no document view bound")
)

// Status is the state of the conversion machine.
type Status int

const (
	StatusIdle Status = iota
	StatusConverting
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConverting:
		return "converting"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Request describes the annotations to create from the matches.
type Request struct {
	View  reader.ViewID
	Type  reader.AnnotationType
	Color string
}

// Engine is the document rendering collaborator that owns search matches.
type Engine interface {
	ConvertSearchResults(ctx context.Context, req Request) (int, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, req Request) (int, error)

func (f EngineFunc) ConvertSearchResults(ctx context.Context, req Request) (int, error) {
	return f(ctx, req)
}

// NewRequest builds a request, defaulting the type to highlight and the
// color to the tool color or, when unset, the first palette entry.
func NewRequest(view reader.ViewID, mode reader.AnnotationType, tool reader.Tool, palette []string) Request {
	req := Request{View: view, Type: mode, Color: tool.Color}
	if req.Type == "" {
		req.Type = reader.AnnotationHighlight
	}
	if req.Color == "" && len(palette) > 0 {
		req.Color = palette[0]
	}
	return req
}

// Result is reported when a conversion finishes.
type Result struct {
	RunID   string
	Request Request
	Status  Status
	Created int
	Err     error
}

// Machine tracks the single search-to-annotation conversion. It moves
// idle -> converting -> done|failed; a new conversion may start from any
// state except converting.
type Machine struct {
	mu     sync.Mutex
	status Status
	runID  string
	logger zerolog.Logger
}

// NewMachine returns an idle machine.
func NewMachine(logger zerolog.Logger) *Machine {
	return &Machine{logger: logger}
}

// Status returns the current state.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Busy reports whether the trigger must be disabled.
func (m *Machine) Busy() bool {
	return m.Status() == StatusConverting
}

// Begin moves the machine to converting. It returns ErrInFlight when a
// conversion is already running.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusConverting {
		return ErrInFlight
	}
	m.status = StatusConverting
	m.runID = uuid.NewString()
	return nil
}

// Run performs a conversion that was started with Begin. A nil engine is a
// silent no-op that ends in failed; the only trace is a log entry.
func (m *Machine) Run(ctx context.Context, engine Engine, req Request) Result {
	m.mu.Lock()
	res := Result{RunID: m.runID, Request: req}
	m.mu.Unlock()
	logger := m.logger.With().Str("run_id", res.RunID).Logger()

	if engine == nil {
		logger.Debug().Ctx(ctx).
			Msg("convert search results: no document view bound, skipping")
		res.Err = ErrNoEngine
		res.Status = m.finish(StatusFailed)
		return res
	}

	n, err := engine.ConvertSearchResults(ctx, req)
	if err != nil {
		logger.Warn().Ctx(ctx).Err(err).
			Str("type", string(req.Type)).
			Msg("convert search results failed")
		res.Err = err
		res.Status = m.finish(StatusFailed)
		return res
	}

	logger.Info().Ctx(ctx).
		Int("created", n).
		Msg("converted search results")
	res.Created = n
	res.Status = m.finish(StatusDone)
	return res
}

// Convert runs Begin and Run in one call.
func (m *Machine) Convert(ctx context.Context, engine Engine, req Request) (Result, error) {
	if err := m.Begin(); err != nil {
		return Result{Request: req, Status: StatusConverting}, err
	}
	return m.Run(ctx, engine, req), nil
}

// Reset returns a finished machine to idle. It has no effect while a
// conversion is running.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusConverting {
		m.status = StatusIdle
	}
}

func (m *Machine) finish(s Status) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
	return s
}
