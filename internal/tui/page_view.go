package tui

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/document"
)

// viewCursor is the caret and scroll offset of one document view.
type viewCursor struct {
	line   int
	col    int
	scroll int
}

// pos returns the caret as a document position on page.
func (c viewCursor) pos(page int) document.Position {
	return document.Position{Page: page, Line: c.line, Col: c.col}
}

// clamp keeps the caret on the page and scrolls vp so the caret's line
// stays in view. The resulting offset is kept in scroll.
func (c viewCursor) clamp(doc *document.Document, page int, vp *viewport.Model) viewCursor {
	if page < 0 || page >= len(doc.Pages) {
		vp.SetContentLines(nil)
		vp.SetYOffset(0)
		return viewCursor{}
	}
	lines := doc.Pages[page].Lines
	c.line = max(0, min(c.line, len(lines)-1))
	c.col = max(0, min(c.col, max(doc.LineLen(page, c.line)-1, 0)))

	vp.SetHeight(max(vp.Height(), 1))
	vp.SetContentLines(slices.Clone(lines))
	vp.SetYOffset(c.scroll)
	if c.line < vp.YOffset() {
		vp.SetYOffset(c.line)
	}
	if c.line >= vp.YOffset()+vp.Height() {
		vp.SetYOffset(c.line - vp.Height() + 1)
	}
	c.scroll = vp.YOffset()
	return c
}

// textRow converts a page line to a row inside the view's inner area. Row 0
// holds the page header.
func (c viewCursor) textRow(line int) int { return line - c.scroll + 1 }

// cellCol converts a rune column on a page line to a cell column.
func cellCol(doc *document.Document, page, line, col int) int {
	if page < 0 || page >= len(doc.Pages) || line < 0 || line >= len(doc.Pages[page].Lines) {
		return col
	}
	r := []rune(doc.Pages[page].Lines[line])
	if col > len(r) {
		return ansi.StringWidth(string(r)) + col - len(r)
	}
	return ansi.StringWidth(string(r[:max(col, 0)]))
}

// cellLayer indexes into pageView.palette; zero is unstyled text.
type cellLayer int

// pageView renders one page of a document view. Decorations are painted in
// increasing precedence: links, annotations, matches, selection, caret.
type pageView struct {
	doc       *document.Document
	view      reader.ViewID
	page      int
	state     reader.State
	matches   []document.Span
	current   *document.Span
	selection *document.Span
	cursor    viewCursor
	focused   bool
	catalog   *i18n.Catalog

	palette []lipgloss.Style
	cells   [][]cellLayer
}

func (v *pageView) layer(style lipgloss.Style) cellLayer {
	v.palette = append(v.palette, style)
	return cellLayer(len(v.palette) - 1)
}

func (v *pageView) paint(s document.Span, l cellLayer) {
	if s.Page != v.page || s.Line < 0 || s.Line >= len(v.cells) {
		return
	}
	row := v.cells[s.Line]
	for i := max(s.Col, 0); i < min(s.Col+s.Len, len(row)); i++ {
		row[i] = l
	}
}

func (v *pageView) decorate() {
	p := v.doc.Pages[v.page]
	v.palette = []lipgloss.Style{lipgloss.NewStyle()}
	v.cells = make([][]cellLayer, len(p.Lines))
	for i, line := range p.Lines {
		v.cells[i] = make([]cellLayer, len([]rune(line)))
	}

	link := v.layer(styles.LinkAnchorStyle)
	for _, l := range p.Links {
		v.paint(l.Span, link)
	}

	for _, a := range v.state.Annotations {
		if a.PageIndex != v.page {
			continue
		}
		span, ok := v.doc.Locate(v.page, a.Text)
		if !ok {
			continue
		}
		style := styles.AnnotationStyle(a.Color, a.Type == reader.AnnotationUnderline)
		if slices.Contains(v.state.SelectedAnnotationIDs, a.ID) {
			style = style.Bold(true)
		}
		v.paint(span, v.layer(style))
	}

	if v.state.View(v.view).FindState.HighlightAll {
		match := v.layer(styles.MatchStyle)
		for _, m := range v.matches {
			v.paint(m, match)
		}
	}
	if v.current != nil {
		v.paint(*v.current, v.layer(styles.CurrentMatchStyle))
	}
	if v.selection != nil {
		v.paint(*v.selection, v.layer(styles.CursorStyle.Underline(true)))
	}
	if v.focused {
		v.paint(document.Span{Position: v.cursor.pos(v.page), Len: 1}, v.layer(styles.CursorStyle))
	}
}

// Render draws the page into an area of width x height cells. Text rows
// scroll through a viewport at the caret's offset.
func (v *pageView) Render(width, height int) string {
	if v.page < 0 || v.page >= len(v.doc.Pages) {
		return lipgloss.NewStyle().Width(width).Height(height).Render("")
	}
	v.decorate()

	p := v.doc.Pages[v.page]
	header := v.catalog.Tf(i18n.Page, p.Label, len(v.doc.Pages))
	rows := []string{styles.PageLabelStyle.Render(ansi.Truncate(header, width, "…"))}

	if height > 1 {
		lines := make([]string, len(p.Lines))
		for li, line := range p.Lines {
			lines[li] = v.renderLine([]rune(line), v.cells[li])
		}
		vp := viewport.New(viewport.WithWidth(width), viewport.WithHeight(height-1))
		vp.SetContentLines(lines)
		vp.SetYOffset(v.cursor.scroll)
		rows = append(rows, vp.View())
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(strings.Join(rows, "\n"))
}

func (v *pageView) renderLine(line []rune, cells []cellLayer) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && cells[i] == cells[start] {
			continue
		}
		seg := string(line[start:i])
		if cells[start] == 0 {
			b.WriteString(seg)
		} else {
			b.WriteString(v.palette[cells[start]].Render(seg))
		}
		start = i
	}
	return b.String()
}
