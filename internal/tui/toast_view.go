package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/lectern/internal/core/notify"
	"github.com/hay-kot/lectern/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView draws the controller's toasts in the lower-right corner of the
// screen, above every other layer.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the stack with the oldest toast on top.
func (v *ToastView) View() string {
	var b strings.Builder
	for i, t := range v.controller.Toasts() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderToast(t))
	}
	return b.String()
}

func renderToast(t toast) string {
	var (
		icon  string
		style lipgloss.Style
	)
	switch t.notification.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	default:
		icon, style = styles.IconNotifyInfo, styles.ToastInfoStyle
	}

	text := icon + " " + t.notification.Message
	if t.repeats > 0 {
		text += fmt.Sprintf(" (x%d)", t.repeats+1)
	}
	return style.Width(toastWidth).Render(text)
}

// Overlay returns background with the toast stack composited over it.
func (v *ToastView) Overlay(background string, width, height int) string {
	stack := v.View()
	if stack == "" {
		return background
	}

	layer := lipgloss.NewLayer(stack).
		X(max(width-lipgloss.Width(stack)-1, 0)).
		Y(max(height-lipgloss.Height(stack), 0)).
		Z(zToast)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
