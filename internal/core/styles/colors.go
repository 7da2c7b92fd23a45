package styles

import (
	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch renders a small block in the annotation color. Invalid colors
// render in the muted color.
func Swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("■")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")
}

// AnnotationStyle returns the style for page text covered by an annotation
// of the given color. Highlights tint the background toward the theme
// background so text stays readable; underlines take the annotation color.
func AnnotationStyle(hex string, underline bool) lipgloss.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle()
	}

	if underline {
		return lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color(c.Hex()))
	}

	bg := c
	if base, ok := colorful.MakeColor(ColorBackground); ok {
		bg = c.BlendLab(base, 0.35).Clamped()
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(ContrastText(bg.Hex())))
}

// ContrastText returns black or white, whichever reads better on hex.
func ContrastText(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	_, _, l := c.Hcl()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
