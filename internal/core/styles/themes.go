package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"paper": {
		Primary:    lipgloss.Color("#2e5aac"),
		Secondary:  lipgloss.Color("#1b7f79"),
		Foreground: lipgloss.Color("#2b2b2b"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Background: lipgloss.Color("#f7f3e8"),
		Surface:    lipgloss.Color("#e6dfcc"),
		Success:    lipgloss.Color("#3f7d20"),
		Warning:    lipgloss.Color("#b7791f"),
		Error:      lipgloss.Color("#c53030"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// UseTheme activates a named theme, falling back to DefaultTheme for
// unknown names. It reports whether name was found.
func UseTheme(name string) bool {
	p, ok := themes[name]
	if !ok {
		p = themes[DefaultTheme]
	}
	SetTheme(p)
	return ok
}

// ThemeColors returns the background and foreground of a named theme as
// hex strings. Unknown names return empty strings.
func ThemeColors(name string) (bg, fg string) {
	p, ok := themes[name]
	if !ok {
		return "", ""
	}
	if h := colorHexPtr(p.Background); h != nil {
		bg = *h
	}
	if h := colorHexPtr(p.Foreground); h != nil {
		fg = *h
	}
	return bg, fg
}
