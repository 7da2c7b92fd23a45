package styles

import "github.com/charmbracelet/huh"

// FormTheme returns the theme for huh forms run outside the TUI.
func FormTheme() *huh.Theme {
	return huh.ThemeBase16()
}
