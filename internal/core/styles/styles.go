// Package styles provides shared lipgloss v2 styles for the reader UI.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Frame.
	ToolbarStyle         lipgloss.Style
	ToolbarItemStyle     lipgloss.Style
	ToolbarDisabledStyle lipgloss.Style
	ToolbarActiveStyle   lipgloss.Style

	SidebarStyle         lipgloss.Style
	SidebarTitleStyle    lipgloss.Style
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style

	ViewStyle         lipgloss.Style
	ViewFocusedStyle  lipgloss.Style
	PageLabelStyle    lipgloss.Style
	MatchStyle        lipgloss.Style
	CurrentMatchStyle lipgloss.Style
	LinkAnchorStyle   lipgloss.Style
	CursorStyle       lipgloss.Style

	ErrorBannerStyle lipgloss.Style

	// Popups.
	PopupStyle             lipgloss.Style
	PopupTitleStyle        lipgloss.Style
	PopupMutedStyle        lipgloss.Style
	PopupButtonStyle       lipgloss.Style
	PopupButtonActiveStyle lipgloss.Style
	PopupTagStyle          lipgloss.Style

	// Text fragments.
	LinkStyle     lipgloss.Style
	EmphasisStyle lipgloss.Style
	StrongStyle   lipgloss.Style

	// Modals.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
	ConfirmMessageStyle      lipgloss.Style
	TextPrimaryStyle         lipgloss.Style
	TextPrimaryBoldStyle     lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToolbarStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground).
		Padding(0, 1)
	ToolbarItemStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground)
	ToolbarDisabledStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorMuted)
	ToolbarActiveStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorPrimary).
		Bold(true)

	SidebarStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	SidebarTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SidebarItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	SidebarSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary)

	ViewStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface)
	ViewFocusedStyle = ViewStyle.
		BorderForeground(ColorPrimary)
	PageLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	MatchStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground)
	CurrentMatchStyle = lipgloss.NewStyle().
		Background(ColorWarning).
		Foreground(ColorBackground)
	LinkAnchorStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Underline(true)
	CursorStyle = lipgloss.NewStyle().
		Reverse(true)

	ErrorBannerStyle = lipgloss.NewStyle().
		Background(ColorError).
		Foreground(ColorBackground).
		Bold(true).
		Padding(0, 1)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Background(ColorBackground).
		Padding(0, 1)
	PopupTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	PopupMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PopupButtonStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Padding(0, 1)
	PopupButtonActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)
	PopupTagStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	LinkStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Underline(true)
	EmphasisStyle = lipgloss.NewStyle().
		Italic(true)
	StrongStyle = lipgloss.NewStyle().
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Padding(0, 2)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 2).
		Bold(true)
	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TextPrimaryStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	TextPrimaryBoldStyle = TextPrimaryStyle.
		Bold(true)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary)
	ToastWarningStyle = toast.BorderForeground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
