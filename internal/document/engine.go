package document

import (
	"context"
	"fmt"

	"github.com/hay-kot/lectern/internal/core/convert"
)

// Engine is the rendering collaborator that owns search matches. It
// implements convert.Engine over a session.
type Engine struct {
	session *Session
}

var _ convert.Engine = (*Engine)(nil)

// NewEngine returns an engine bound to session.
func NewEngine(session *Session) *Engine {
	return &Engine{session: session}
}

// ConvertSearchResults turns every current match of the requested view into
// an annotation of the requested type and color.
func (e *Engine) ConvertSearchResults(ctx context.Context, req convert.Request) (int, error) {
	n, err := e.session.ConvertMatches(ctx, req.View, req.Type, req.Color)
	if err != nil {
		return n, fmt.Errorf("convert search results: %w", err)
	}
	return n, nil
}
