// Package document provides the reader's document collaborators: a page
// model built from a YAML fixture, the session that owns the shared UI
// state, and the engine that turns search matches into annotations.
package document

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/hay-kot/lectern/internal/core/reader"
)

// Position addresses a rune on a page line.
type Position struct {
	Page int
	Line int
	Col  int
}

// Span is a run of Len runes starting at Position. Spans never cross lines.
type Span struct {
	Position
	Len int
}

// Contains reports whether p falls inside s.
func (s Span) Contains(p Position) bool {
	return p.Page == s.Page && p.Line == s.Line && p.Col >= s.Col && p.Col < s.Col+s.Len
}

// Page is one page of text.
type Page struct {
	Index int
	Label string
	Lines []string
	Links []PageLink
}

// PageLink is a link with its location on the page.
type PageLink struct {
	Link
	Span Span
}

// Document is an immutable, searchable set of pages.
type Document struct {
	ID       string
	Title    string
	ReadOnly bool
	Pages    []Page
	Outline  []OutlineItem

	// Annotations holds the annotations present when the document was
	// opened. The session owns the live collection.
	Annotations []reader.Annotation

	password string
}

// New builds a document from a fixture. Links whose anchor text cannot be
// found on their page are dropped.
func New(f *Fixture) *Document {
	d := &Document{
		ID:       f.ID,
		Title:    f.Title,
		ReadOnly: f.ReadOnly,
		Outline:  f.Outline,
		password: f.Password,

		Annotations: f.Annotations,
	}

	for i, pf := range f.Pages {
		label := pf.Label
		if label == "" {
			label = strconv.Itoa(i + 1)
		}
		page := Page{
			Index: i,
			Label: label,
			Lines: strings.Split(strings.TrimRight(pf.Text, "\n"), "\n"),
		}
		d.Pages = append(d.Pages, page)

		for _, l := range pf.Links {
			if span, ok := d.Locate(i, l.Anchor); ok {
				d.Pages[i].Links = append(d.Pages[i].Links, PageLink{Link: l, Span: span})
			}
		}
	}

	return d
}

// Locked reports whether the document needs a password.
func (d *Document) Locked() bool { return d.password != "" }

// CheckPassword reports whether pw unlocks the document.
func (d *Document) CheckPassword(pw string) bool { return d.password == "" || pw == d.password }

// PageLabel returns the label of page i, or "" when out of range.
func (d *Document) PageLabel(i int) string {
	if i < 0 || i >= len(d.Pages) {
		return ""
	}
	return d.Pages[i].Label
}

// Locate returns the first occurrence of text on page.
func (d *Document) Locate(page int, text string) (Span, bool) {
	if page < 0 || page >= len(d.Pages) || text == "" {
		return Span{}, false
	}
	needle := []rune(text)
	for li, line := range d.Pages[page].Lines {
		if col := indexRunes([]rune(line), needle, true, false, 0); col >= 0 {
			return Span{Position: Position{Page: page, Line: li, Col: col}, Len: len(needle)}, true
		}
	}
	return Span{}, false
}

// Text returns the text covered by span.
func (d *Document) Text(s Span) string {
	if s.Page < 0 || s.Page >= len(d.Pages) {
		return ""
	}
	lines := d.Pages[s.Page].Lines
	if s.Line < 0 || s.Line >= len(lines) {
		return ""
	}
	line := []rune(lines[s.Line])
	if s.Col < 0 || s.Col >= len(line) {
		return ""
	}
	end := min(s.Col+s.Len, len(line))
	return string(line[s.Col:end])
}

// LinkAt returns the link covering p.
func (d *Document) LinkAt(p Position) (PageLink, bool) {
	if p.Page < 0 || p.Page >= len(d.Pages) {
		return PageLink{}, false
	}
	for _, l := range d.Pages[p.Page].Links {
		if l.Span.Contains(p) {
			return l, true
		}
	}
	return PageLink{}, false
}

// SearchOptions mirrors the find popup toggles.
type SearchOptions struct {
	CaseSensitive bool
	EntireWord    bool
}

// OptionsFrom extracts search options from a find state.
func OptionsFrom(fs reader.FindState) SearchOptions {
	return SearchOptions{CaseSensitive: fs.CaseSensitive, EntireWord: fs.EntireWord}
}

// Search returns every non-overlapping match of query in reading order.
func (d *Document) Search(query string, opts SearchOptions) []Span {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	needle := []rune(query)

	var out []Span
	for _, page := range d.Pages {
		for li, line := range page.Lines {
			hay := []rune(line)
			for from := 0; from <= len(hay)-len(needle); {
				col := indexRunes(hay, needle, opts.CaseSensitive, opts.EntireWord, from)
				if col < 0 {
					break
				}
				out = append(out, Span{Position: Position{Page: page.Index, Line: li, Col: col}, Len: len(needle)})
				from = col + len(needle)
			}
		}
	}
	return out
}

func indexRunes(hay, needle []rune, caseSensitive, entireWord bool, from int) int {
	for i := from; i+len(needle) <= len(hay); i++ {
		if !equalRunes(hay[i:i+len(needle)], needle, caseSensitive) {
			continue
		}
		if entireWord && !isWordBoundary(hay, i, i+len(needle)) {
			continue
		}
		return i
	}
	return -1
}

func equalRunes(a, b []rune, caseSensitive bool) bool {
	for i := range a {
		if caseSensitive {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func isWordBoundary(line []rune, start, end int) bool {
	if start > 0 && isWordRune(line[start-1]) {
		return false
	}
	if end < len(line) && isWordRune(line[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}


// WordAt returns the word covering p. When p is not on a word rune the span
// covers the single rune at p.
func (d *Document) WordAt(p Position) (Span, bool) {
	if p.Page < 0 || p.Page >= len(d.Pages) {
		return Span{}, false
	}
	lines := d.Pages[p.Page].Lines
	if p.Line < 0 || p.Line >= len(lines) {
		return Span{}, false
	}
	line := []rune(lines[p.Line])
	if p.Col < 0 || p.Col >= len(line) {
		return Span{}, false
	}
	if !isWordRune(line[p.Col]) {
		return Span{Position: p, Len: 1}, true
	}

	start, end := p.Col, p.Col+1
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	for end < len(line) && isWordRune(line[end]) {
		end++
	}
	return Span{Position: Position{Page: p.Page, Line: p.Line, Col: start}, Len: end - start}, true
}

// LineLen returns the rune length of a line, or 0 when out of range.
func (d *Document) LineLen(page, line int) int {
	if page < 0 || page >= len(d.Pages) {
		return 0
	}
	lines := d.Pages[page].Lines
	if line < 0 || line >= len(lines) {
		return 0
	}
	return len([]rune(lines[line]))
}
