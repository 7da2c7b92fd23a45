package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/popup"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/core/textrun"
)

// popupContent renders the body of a resolved popup.
func (m Model) popupContent(p *popup.Popup) string {
	width := m.cfg.Popup.Width
	switch {
	case p.Find != nil:
		return m.findPopup(p.Key.View, *p.Find, width)
	case p.Overlay != nil:
		return m.overlayPopup(*p.Overlay, width)
	case p.Annotation != nil:
		return m.annotationPopup(*p.Annotation, width)
	case p.Selection != nil:
		return m.selectionPopup(p.Key.View, *p.Selection, width)
	}
	return ""
}

func button(label string, active bool) string {
	if active {
		return styles.PopupButtonActiveStyle.Render(label)
	}
	return styles.PopupButtonStyle.Render(label)
}

// swatches renders the palette as numbered color buttons; current is marked.
func swatches(colors []config.AnnotationColor, current string) string {
	parts := make([]string, 0, len(colors))
	for i, c := range colors {
		label := fmt.Sprintf("%d%s", i+1, styles.Swatch(c.Color))
		if strings.EqualFold(c.Color, current) {
			label = styles.TextPrimaryBoldStyle.Render("[") + label + styles.TextPrimaryBoldStyle.Render("]")
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m Model) selectionPopup(view reader.ViewID, sp reader.SelectionPopup, width int) string {
	t := m.catalog.T
	mode := sp.Draft.Type
	if mode == "" {
		mode = m.state.TextSelectionAnnotationMode
	}

	rows := []string{
		swatches(m.cfg.AnnotationColors, ""),
		lipgloss.JoinHorizontal(lipgloss.Top,
			button(styles.IconHighlight+" "+t(i18n.HighlightText), mode == reader.AnnotationHighlight),
			" ",
			button(styles.IconUnderline+" "+t(i18n.UnderlineText), mode == reader.AnnotationUnderline),
		),
	}

	var actions []string
	if m.state.EnableAddToNote {
		actions = append(actions, button("a "+t(i18n.AddToNote), false))
	}
	if m.state.View(view).FindState.HasResults() {
		actions = append(actions, button(m.keyHint(config.ActionConvert)+" "+t(i18n.ConvertSearchResults), false))
	}
	if len(actions) > 0 {
		rows = append(rows, strings.Join(actions, " "))
	}

	return styles.PopupStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) annotationPopup(a reader.Annotation, width int) string {
	t := m.catalog.T
	editable := !m.state.ReadOnly && !a.ReadOnly
	inner := max(width-4, 8)

	title := styles.Swatch(a.Color) + " " + styles.PopupTitleStyle.Render(string(a.Type))
	if a.PageLabel != "" {
		title += styles.PopupMutedStyle.Render(" · " + m.catalog.Tf(i18n.PageLabel, a.PageLabel))
	}
	if a.AuthorName != "" {
		title += styles.PopupMutedStyle.Render(" · " + a.AuthorName)
	}
	if !editable {
		title += " " + styles.PopupMutedStyle.Render(styles.IconLock+" "+t(i18n.ReadOnly))
	}

	rows := []string{title}
	if a.Text != "" {
		rows = append(rows, styles.PopupMutedStyle.Render(ansi.Truncate("“"+a.Text+"”", inner, "…")))
	}

	switch {
	case a.Comment != "":
		rows = append(rows, styles.RenderMarkdown(a.Comment, inner))
	case editable:
		rows = append(rows, styles.PopupMutedStyle.Render(styles.IconComment+" "+t(i18n.AddComment)))
	}

	if len(a.Tags) > 0 {
		tags := make([]string, 0, len(a.Tags))
		for _, tag := range a.Tags {
			tags = append(tags, styles.PopupTagStyle.Render("#"+tag.Name))
		}
		rows = append(rows, styles.IconTag+" "+strings.Join(tags, " "))
	} else if editable {
		rows = append(rows, styles.PopupMutedStyle.Render(styles.IconTag+" "+t(i18n.Tags)))
	}

	if editable {
		rows = append(rows,
			swatches(m.cfg.AnnotationColors, a.Color),
			styles.PopupMutedStyle.Render("c comment  t tags  l label  x delete"),
		)
	}

	return styles.PopupStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) overlayPopup(op reader.OverlayPopup, width int) string {
	t := m.catalog.T
	inner := max(width-4, 8)

	title := styles.IconLink + " " + styles.PopupTitleStyle.Render(overlayTitle(op.Kind))
	rows := []string{title}

	if frags := textrun.Format(op.Chars); len(frags) > 0 {
		rows = append(rows, lipgloss.NewStyle().Width(inner).Render(m.runs.Render(frags)))
	}
	if op.URL != "" {
		rows = append(rows, styles.LinkStyle.Render(ansi.Truncate(op.URL, inner, "…")))
	}

	var actions []string
	if op.URL != "" {
		actions = append(actions, button("enter "+t(i18n.OpenLink), false))
	}
	if op.Dest != nil {
		label := op.Dest.Label
		if label == "" {
			label = m.provider.Document().PageLabel(op.Dest.PageIndex)
		}
		actions = append(actions, button("g "+t(i18n.GoToDestination)+" "+label, false))
	}
	actions = append(actions, button("esc "+t(i18n.Close), false))
	rows = append(rows, strings.Join(actions, " "))

	return styles.PopupStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func overlayTitle(k reader.OverlayKind) string {
	switch k {
	case reader.OverlayCitation:
		return "Citation"
	case reader.OverlayReference:
		return "Reference"
	default:
		return "Link"
	}
}

func (m Model) findPopup(view reader.ViewID, fs reader.FindState, width int) string {
	t := m.catalog.T

	counter := ""
	switch {
	case fs.HasResults():
		counter = m.catalog.Tf(i18n.FindResultCount, fs.Result.Index+1, fs.Result.Total)
	case fs.Active:
		counter = t(i18n.FindNoResults)
	}

	input := m.findInputs[view].View()
	head := styles.IconSearch + " " + input
	if counter != "" {
		head += " " + styles.PopupMutedStyle.Render(counter)
	}

	toggles := strings.Join([]string{
		button(t(i18n.HighlightAll), fs.HighlightAll),
		button(t(i18n.MatchCase), fs.CaseSensitive),
		button(t(i18n.WholeWords), fs.EntireWord),
	}, " ")

	rows := []string{head, toggles}
	switch {
	case m.machine.Busy() && m.convertView == view:
		rows = append(rows, m.spinner.View()+" "+t(i18n.Converting))
	case fs.HasResults() && !m.state.ReadOnly:
		rows = append(rows, button("alt+enter "+t(i18n.ConvertSearchResults), false))
	}

	style := styles.PopupStyle
	if !m.findFocused || m.state.Focused() != view {
		style = style.BorderForeground(styles.ColorMuted)
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

// keyHint returns the key bound to action for display.
func (m Model) keyHint(action string) string {
	if k := m.keys.KeyFor(action); k != "" {
		return k
	}
	return "?"
}
