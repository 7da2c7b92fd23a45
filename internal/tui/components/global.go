package components

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
)

// InputModal renders a titled modal around an input view.
func InputModal(title, message, input, help string) string {
	parts := []string{styles.ModalTitleStyle.Render(title), ""}
	if message != "" {
		parts = append(parts, styles.ConfirmMessageStyle.Render(message), "")
	}
	parts = append(parts, input)
	if help != "" {
		parts = append(parts, styles.ModalHelpStyle.Render(help))
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// PasswordModal renders the password prompt. failed marks a rejected
// attempt.
func PasswordModal(title, input string, failed bool) string {
	message := ""
	if failed {
		message = lipgloss.NewStyle().Foreground(styles.ColorError).Render("Incorrect password")
	}
	return InputModal(styles.IconLock+" "+title, message, input, "enter unlock")
}

// ProgressBar renders percent as a bar of width cells.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := width * percent / 100
	bar := lipgloss.NewStyle().Foreground(styles.ColorPrimary).Render(strings.Repeat("█", filled)) +
		styles.DividerStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

// PrintModal renders print progress.
func PrintModal(message string, percent int) string {
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ConfirmMessageStyle.Render(message),
		"",
		ProgressBar(percent, 30),
		styles.ModalHelpStyle.Render("esc cancel"),
	))
}

// MenuModal renders a context menu with the item at cursor highlighted.
func MenuModal(items []reader.ContextMenuItem, cursor int) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		style := styles.SidebarItemStyle
		switch {
		case it.Disabled:
			style = styles.PopupMutedStyle
		case i == cursor:
			style = styles.SidebarSelectedStyle
		}
		lines = append(lines, style.Render(" "+it.Label+" "))
	}
	return styles.PopupStyle.Render(strings.Join(lines, "\n"))
}

// ChoiceModal renders a titled list of options; current is marked and
// cursor is highlighted.
func ChoiceModal(title string, options []string, cursor int, current string) string {
	lines := make([]string, 0, len(options))
	for i, opt := range options {
		mark := "  "
		if opt == current {
			mark = "● "
		}
		style := styles.SidebarItemStyle
		if i == cursor {
			style = styles.SidebarSelectedStyle
		}
		lines = append(lines, style.Render(mark+opt+" "))
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		"",
		strings.Join(lines, "\n"),
		styles.ModalHelpStyle.Render("↑/↓ select  enter apply  esc close"),
	))
}
