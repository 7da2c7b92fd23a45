package tui

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/document"
)

// sidebarItem is one row of a sidebar pane.
type sidebarItem struct {
	label        string
	detail       string
	page         int
	depth        int
	annotationID string
	color        string
}

// FilterValue implements list.Item.
func (it sidebarItem) FilterValue() string { return it.label + " " + it.detail }

// sidebarDelegate renders sidebar rows. Outline rows take one line, the
// other panes add a muted detail line under the label.
type sidebarDelegate struct {
	rows    int
	focused bool
}

func (d sidebarDelegate) Height() int                             { return d.rows }
func (d sidebarDelegate) Spacing() int                            { return 0 }
func (d sidebarDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render truncates the plain label before the swatch is attached so the cut
// never lands inside an escape sequence.
func (d sidebarDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(sidebarItem)
	if !ok {
		return
	}
	width := max(m.Width(), 4)

	style := styles.SidebarItemStyle
	if index == m.Index() && d.focused {
		style = styles.SidebarSelectedStyle
	}

	head := strings.Repeat("  ", it.depth) + it.label
	if it.color != "" {
		swatch := styles.Swatch(it.color) + " "
		head = swatch + ansi.Truncate(head, width-lipgloss.Width(swatch), "…")
	} else {
		head = ansi.Truncate(head, width, "…")
	}
	_, _ = io.WriteString(w, style.Render(head))

	if d.rows > 1 {
		detail := ansi.Truncate("  "+firstLine(it.detail), width, "…")
		_, _ = io.WriteString(w, "\n"+styles.PopupMutedStyle.Render(detail))
	}
}

// Sidebar lists thumbnails, outline entries, or annotations. Each pane is a
// list with its own cursor.
type Sidebar struct {
	panes map[reader.SidebarView]*list.Model
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{panes: map[reader.SidebarView]*list.Model{}}
}

func paneRows(view reader.SidebarView) int {
	if view == reader.SidebarOutline {
		return 1
	}
	return 2
}

// pane returns the list of view loaded with items.
func (s *Sidebar) pane(view reader.SidebarView, items []sidebarItem) *list.Model {
	l, ok := s.panes[view]
	if !ok {
		nl := list.New(nil, sidebarDelegate{rows: paneRows(view)}, 0, 0)
		nl.SetShowTitle(false)
		nl.SetShowStatusBar(false)
		nl.SetShowPagination(false)
		nl.SetShowHelp(false)
		nl.SetShowFilter(false)
		nl.SetFilteringEnabled(false)
		nl.DisableQuitKeybindings()
		nl.SetStatusBarItemName("entry", "entries")
		nl.Styles.NoItems = styles.PopupMutedStyle
		l = &nl
		s.panes[view] = l
	}

	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	idx := l.Index()
	l.SetItems(li)
	l.Select(max(0, min(idx, len(items)-1)))
	return l
}

// Items returns the rows of the active pane.
func (s *Sidebar) Items(st reader.State, doc *document.Document) []sidebarItem {
	switch st.SidebarView {
	case reader.SidebarThumbnails:
		items := make([]sidebarItem, 0, len(doc.Pages))
		for _, p := range doc.Pages {
			first := ""
			for _, l := range p.Lines {
				if strings.TrimSpace(l) != "" {
					first = strings.TrimSpace(l)
					break
				}
			}
			items = append(items, sidebarItem{label: p.Label, detail: first, page: p.Index})
		}
		return items

	case reader.SidebarOutline:
		var items []sidebarItem
		var walk func([]document.OutlineItem, int)
		walk = func(entries []document.OutlineItem, depth int) {
			for _, e := range entries {
				items = append(items, sidebarItem{label: e.Title, page: e.PageIndex, depth: depth})
				walk(e.Items, depth+1)
			}
		}
		walk(doc.Outline, 0)
		return items

	default:
		anns := slices.Clone(st.Annotations)
		slices.SortStableFunc(anns, func(a, b reader.Annotation) int { return cmp.Compare(a.PageIndex, b.PageIndex) })
		items := make([]sidebarItem, 0, len(anns))
		for _, a := range anns {
			detail := a.Comment
			if detail == "" {
				detail = a.Text
			}
			items = append(items, sidebarItem{
				label:        a.PageLabel,
				detail:       detail,
				page:         a.PageIndex,
				annotationID: a.ID,
				color:        a.Color,
			})
		}
		return items
	}
}

// Move shifts the cursor of the active pane by delta rows.
func (s *Sidebar) Move(st reader.State, doc *document.Document, delta int) {
	l := s.pane(st.SidebarView, s.Items(st, doc))
	for ; delta > 0; delta-- {
		l.CursorDown()
	}
	for ; delta < 0; delta++ {
		l.CursorUp()
	}
}

// Selected returns the row under the cursor.
func (s *Sidebar) Selected(st reader.State, doc *document.Document) (sidebarItem, bool) {
	it, ok := s.pane(st.SidebarView, s.Items(st, doc)).SelectedItem().(sidebarItem)
	return it, ok
}

// SelectAnnotation moves the annotations cursor to id.
func (s *Sidebar) SelectAnnotation(st reader.State, doc *document.Document, id string) bool {
	st.SidebarView = reader.SidebarAnnotations
	items := s.Items(st, doc)
	i := slices.IndexFunc(items, func(it sidebarItem) bool { return it.annotationID == id })
	if i < 0 {
		return false
	}
	s.pane(reader.SidebarAnnotations, items).Select(i)
	return true
}

// View renders the sidebar into a width x height area.
func (s *Sidebar) View(st reader.State, doc *document.Document, catalog *i18n.Catalog, width, height int, focused bool) string {
	title := map[reader.SidebarView]string{
		reader.SidebarThumbnails:  catalog.T(i18n.Thumbnails),
		reader.SidebarOutline:     catalog.T(i18n.Outline),
		reader.SidebarAnnotations: catalog.T(i18n.Annotations),
	}[st.SidebarView]
	titleStyle := styles.SidebarTitleStyle
	if !focused {
		titleStyle = titleStyle.Foreground(styles.ColorMuted)
	}

	l := s.pane(st.SidebarView, s.Items(st, doc))
	idx := l.Index()
	l.SetDelegate(sidebarDelegate{rows: paneRows(st.SidebarView), focused: focused})
	l.SetSize(max(width-3, 4), max(height-2, 1))
	l.Select(idx)

	head := titleStyle.Render(ansi.Truncate(styles.IconSidebar+" "+title, max(width-3, 4), "…"))
	body := lipgloss.JoinVertical(lipgloss.Left, head, "", l.View())
	return styles.SidebarStyle.Width(width).Height(height).MaxHeight(height).Render(body)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
