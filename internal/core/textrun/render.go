package textrun

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Renderer turns fragments into terminal text. Each wrapper layer maps to one
// style; links additionally carry an OSC 8 hyperlink when Hyperlinks is set.
type Renderer struct {
	Link       lipgloss.Style
	Emphasis   lipgloss.Style
	Strong     lipgloss.Style
	Hyperlinks bool
}

// NewRenderer returns a renderer with plain underline/italic/bold layers.
func NewRenderer() Renderer {
	return Renderer{
		Link:       lipgloss.NewStyle().Underline(true),
		Emphasis:   lipgloss.NewStyle().Italic(true),
		Strong:     lipgloss.NewStyle().Bold(true),
		Hyperlinks: true,
	}
}

// Fragment renders a single fragment, wrapping from the inside out.
func (r Renderer) Fragment(f Fragment) string {
	out := f.Text
	for _, w := range f.Wrappers() {
		switch w {
		case WrapLink:
			out = r.Link.Render(out)
			if r.Hyperlinks {
				out = ansi.SetHyperlink(f.URL) + out + ansi.ResetHyperlink()
			}
		case WrapEmphasis:
			out = r.Emphasis.Render(out)
		case WrapStrong:
			out = r.Strong.Render(out)
		}
	}
	return out
}

// Render renders all fragments in order.
func (r Renderer) Render(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(r.Fragment(f))
	}
	return b.String()
}

// Links returns the distinct link targets in order of first appearance.
func Links(frags []Fragment) []string {
	var (
		urls []string
		seen = map[string]bool{}
	)
	for _, f := range frags {
		if f.URL == "" || seen[f.URL] {
			continue
		}
		seen[f.URL] = true
		urls = append(urls, f.URL)
	}
	return urls
}
