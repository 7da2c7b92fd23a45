package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/popup"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/tui/components"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderScreen(w, h)
	content = m.modals.Global(m.state, content, m.catalog, m.logger)
	content = m.modals.Overlay(content, m.catalog)
	content = m.toastView.Overlay(content, w, h)

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

// renderScreen composes the toolbar, the error banner, the sidebar, the
// document views, and their popups.
func (m Model) renderScreen(w, h int) string {
	l := computeLayout(m.state, w, h)

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderToolbar(w)),
	}
	if l.banner {
		banner := styles.ErrorBannerStyle.Width(w).MaxHeight(1).Render(ansi.Truncate(m.state.ErrorMessage, w-2, "…"))
		layers = append(layers, lipgloss.NewLayer(banner).Y(toolbarRows))
	}
	if l.sidebar != nil {
		sb := m.sidebar.View(m.state, m.provider.Document(), m.catalog, l.sidebar.W, l.sidebar.H, m.focus == focusSidebar)
		layers = append(layers, lipgloss.NewLayer(sb).X(l.sidebar.X).Y(l.sidebar.Y))
	}

	for _, v := range reader.Views {
		b, ok := l.views[v]
		if !ok {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(m.renderView(v, b)).X(b.X).Y(b.Y))
	}

	layers = append(layers, m.popupLayers(l)...)
	return lipgloss.NewCompositor(layers...).Render()
}

// renderView draws one bordered document view filling b.
func (m Model) renderView(view reader.ViewID, b box) string {
	inner := b.inner()
	focused := m.focus == focusDocument && m.state.Focused() == view

	var body string
	if m.state.PasswordPopup != nil {
		body = lipgloss.NewStyle().Width(inner.W).Height(inner.H).Render(styles.IconLock)
	} else {
		pv := pageView{
			doc:       m.provider.Document(),
			view:      view,
			page:      m.pages[view],
			state:     m.state,
			matches:   m.provider.Matches(view),
			selection: m.selections[view],
			cursor:    m.cursors[view],
			focused:   focused && !m.findFocused,
			catalog:   m.catalog,
		}
		if cur, ok := m.provider.CurrentMatch(view); ok {
			pv.current = &cur
		}
		body = pv.Render(inner.W, inner.H)
	}

	frame := styles.ViewStyle
	if focused && m.state.SplitEnabled() {
		frame = styles.ViewFocusedStyle
	}
	return frame.Render(body)
}

// popupLayers resolves the popups of every view and places them inside the
// view that owns them. Find popups sit in the top right corner; the others
// are anchored to their rect.
func (m Model) popupLayers(l layout) []*lipgloss.Layer {
	resolved := m.coord.ResolveAll(m.state)
	defer m.anchor.Retain(resolved.VisibleKeys())

	var layers []*lipgloss.Layer
	for _, res := range resolved.Views() {
		b, ok := l.views[res.View]
		if !ok {
			continue
		}
		inner := b.inner()
		viewport := popup.Size{Width: inner.W, Height: inner.H}

		for _, p := range res.Visible() {
			content := m.popupContent(p)
			if content == "" {
				continue
			}
			size := popup.Size{Width: lipgloss.Width(content), Height: lipgloss.Height(content)}

			var pl popup.Placement
			if p.Find != nil {
				pl = popup.Placement{X: max(viewport.Width-size.Width, 0)}
			} else {
				pl = m.anchor.Resolve(p.Key, p.Params, size, viewport)
			}
			layers = append(layers, lipgloss.NewLayer(content).X(inner.X+pl.X).Y(inner.Y+pl.Y).Z(zPopup))
		}
	}
	return layers
}

// renderToolbar draws the single toolbar row. It reflects the focused view.
func (m Model) renderToolbar(w int) string {
	view := m.state.Focused()
	stats := m.state.View(view).Stats
	doc := m.provider.Document()

	item := func(s string, enabled bool) string {
		if enabled {
			return styles.ToolbarItemStyle.Render(s)
		}
		return styles.ToolbarDisabledStyle.Render(s)
	}
	sep := styles.ToolbarItemStyle.Render("  ")

	left := []string{
		styles.ToolbarActiveStyle.Render(styles.IconBook + " " + doc.Title),
		item("◀", stats.CanNavigateToPreviousPage) + styles.ToolbarItemStyle.Render(" ") +
			item(m.catalog.Tf(i18n.Page, stats.PageLabel, stats.PagesCount), true) +
			styles.ToolbarItemStyle.Render(" ") + item("▶", stats.CanNavigateToNextPage),
		item(stats.Percentage, stats.Percentage != ""),
		item("↩", stats.CanNavigateBack),
	}

	mode := styles.IconHighlight + " " + m.catalog.T(i18n.HighlightText)
	if m.state.TextSelectionAnnotationMode == reader.AnnotationUnderline {
		mode = styles.IconUnderline + " " + m.catalog.T(i18n.UnderlineText)
	}
	right := []string{item(mode, !m.state.ReadOnly)}
	if m.state.SplitEnabled() {
		right = append(right, styles.ToolbarActiveStyle.Render(styles.IconSplit+" "+view.String()))
	}
	if m.state.ReadOnly {
		right = append(right, item(styles.IconLock+" "+m.catalog.T(i18n.ReadOnly), true))
	}
	if m.machine.Busy() {
		right = append(right, styles.ToolbarItemStyle.Render(m.spinner.View()+" "+m.catalog.T(i18n.Converting)))
	}
	if m.build.Version != "" {
		right = append(right, item("v"+strings.TrimPrefix(m.build.Version, "v"), false))
	}
	right = append(right, item(m.keyHint(config.ActionHelp)+" help", false))

	l := strings.Join(left, sep)
	r := strings.Join(right, sep)
	gap := max(w-lipgloss.Width(l)-lipgloss.Width(r)-2, 1)
	return styles.ToolbarStyle.Width(w).MaxHeight(1).Render(l + styles.ToolbarItemStyle.Render(components.Pad(gap)) + r)
}

// centerAt composites fg centred over bg at depth z.
func centerAt(bg, fg string, w, h, z int) string {
	x := (w - lipgloss.Width(fg)) / 2
	y := (h - lipgloss.Height(fg)) / 2
	return placeAt(bg, fg, x, y, w, h, z)
}

// placeAt composites fg over bg with its top-left corner at x, y, clamped
// so it stays on screen.
func placeAt(bg, fg string, x, y, w, h, z int) string {
	x = max(min(x, w-lipgloss.Width(fg)), 0)
	y = max(min(y, h-lipgloss.Height(fg)), 0)

	bgLayer := lipgloss.NewLayer(bg)
	fgLayer := lipgloss.NewLayer(fg)
	fgLayer.X(x).Y(y).Z(z)
	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
