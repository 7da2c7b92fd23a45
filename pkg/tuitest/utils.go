// Package tuitest builds key and resize messages for driving bubbletea
// models in tests, and normalizes rendered output for assertions.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape codes and trailing spaces from each line so
// rendered frames compare as plain text.
func StripANSI(s string) string {
	lines := Lines(ansi.Strip(s))
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Lines splits s on newlines with trailing spaces trimmed from each line.
func Lines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// Type creates one key press per rune of s.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

func KeyDown() tea.Msg  { return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}) }
func KeyUp() tea.Msg    { return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp}) }
func KeyEnter() tea.Msg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}) }
func KeyEsc() tea.Msg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}) }

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
