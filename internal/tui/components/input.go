package components

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/lectern/internal/core/styles"
)

// NewInput returns a focused single-line input themed for popups.
func NewInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetWidth(width)
	if value != "" {
		ti.SetValue(value)
	}

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	ti.Focus()
	return ti
}

// NewPasswordInput returns a focused input that masks what is typed.
func NewPasswordInput(width int) textinput.Model {
	ti := NewInput("", "", width)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// NewTextArea returns a focused multi-line editor.
func NewTextArea(placeholder, value string, width, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	if value != "" {
		ta.SetValue(value)
	}
	ta.Focus()
	return ta
}
