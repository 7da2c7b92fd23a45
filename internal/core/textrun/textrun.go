// Package textrun groups per-character style attributes produced by text
// extraction into styled fragments for display inside popups.
package textrun

import "strings"

// Run is a single extracted character with its style attributes.
type Run struct {
	Char           string `json:"c" yaml:"c"`
	Bold           bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic         bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	URL            string `json:"url,omitempty" yaml:"url,omitempty"`
	SpaceAfter     bool   `json:"spaceAfter,omitempty" yaml:"space_after,omitempty"`
	LineBreakAfter bool   `json:"lineBreakAfter,omitempty" yaml:"line_break_after,omitempty"`
	Ignorable      bool   `json:"ignorable,omitempty" yaml:"ignorable,omitempty"`
}

// Fragment is a maximal stretch of text sharing one style.
type Fragment struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	URL    string `json:"url,omitempty"`
}

type style struct {
	bold   bool
	italic bool
	url    string
}

func (r Run) style() style { return style{bold: r.Bold, italic: r.Italic, url: r.URL} }

// Format converts runs into fragments. Ignorable runs contribute no text and
// never split a fragment. A space is appended after runs flagged SpaceAfter,
// and after LineBreakAfter runs unless the run is the last one.
func Format(runs []Run) []Fragment {
	var (
		out  []Fragment
		text strings.Builder
		cur  style
		open bool
	)

	flush := func() {
		if open {
			out = append(out, Fragment{Text: text.String(), Bold: cur.bold, Italic: cur.italic, URL: cur.url})
		}
	}

	last := len(runs) - 1
	for i, r := range runs {
		if r.Ignorable {
			continue
		}

		if s := r.style(); !open || s != cur {
			flush()
			cur, open = s, true
			text.Reset()
		}

		text.WriteString(r.Char)
		if r.SpaceAfter || (r.LineBreakAfter && i != last) {
			text.WriteByte(' ')
		}
	}
	flush()

	return out
}

// Wrapper is one layer of markup applied around fragment text.
type Wrapper int

const (
	WrapLink Wrapper = iota
	WrapEmphasis
	WrapStrong
)

func (w Wrapper) String() string {
	switch w {
	case WrapLink:
		return "link"
	case WrapEmphasis:
		return "em"
	case WrapStrong:
		return "strong"
	}
	return "unknown"
}

// Wrappers lists the markup layers for the fragment from innermost to
// outermost: link closest to the text, strong emphasis outside everything.
func (f Fragment) Wrappers() []Wrapper {
	var ws []Wrapper
	if f.URL != "" {
		ws = append(ws, WrapLink)
	}
	if f.Italic {
		ws = append(ws, WrapEmphasis)
	}
	if f.Bold {
		ws = append(ws, WrapStrong)
	}
	return ws
}

// PlainText joins fragment text without styling.
func PlainText(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}

// FromString builds unstyled runs from s, one per rune. Spaces become
// SpaceAfter on the preceding run so the output round-trips through Format.
func FromString(s string) []Run {
	runs := make([]Run, 0, len(s))
	for _, c := range s {
		if c == ' ' && len(runs) > 0 && !runs[len(runs)-1].SpaceAfter {
			runs[len(runs)-1].SpaceAfter = true
			continue
		}
		runs = append(runs, Run{Char: string(c)})
	}
	return runs
}
