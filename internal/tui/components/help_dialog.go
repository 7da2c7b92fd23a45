// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/lectern/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays the reader's keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the help dialog body.
func (h *HelpDialog) View() string {
	separator := styles.DividerStyle.Render(strings.Repeat("─", 28))

	columns := make([]string, 0, len(h.sections))
	for _, section := range h.sections {
		lines := []string{styles.SidebarTitleStyle.Render(section.Title), separator}
		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
		columns = append(columns, strings.Join(lines, "\n"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, Pad(3))...)

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		body,
		styles.ModalHelpStyle.Render("esc/? close"),
	))
}

// Overlay renders the help dialog centred over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return Center(background, h.View(), width, height)
}

// Center composites fg in the middle of bg.
func Center(bg, fg string, width, height int) string {
	bgLayer := lipgloss.NewLayer(bg)
	fgLayer := lipgloss.NewLayer(fg)

	fgW := lipgloss.Width(fg)
	fgH := lipgloss.Height(fg)
	fgLayer.X(max((width-fgW)/2, 0)).Y(max((height-fgH)/2, 0)).Z(1)

	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}

func interleave(items []string, sep string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items)*2-1)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

// formatKeyDesc aligns a key-description pair on display width.
func formatKeyDesc(key, desc string) string {
	const keyWidth = 14
	padded := key + Pad(keyWidth-lipgloss.Width(key))
	return styles.TextPrimaryBoldStyle.Render(padded) + styles.CommandStyle.Render(desc)
}
