package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/lectern/internal/core/styles"
)

// ConfirmModal is a yes/no question answered with a single key.
type ConfirmModal struct {
	title     string
	message   string
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{title: title, message: message}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	}

	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	body := styles.ConfirmMessageStyle.Render(m.message) + "\n\n" +
		styles.TextPrimaryBoldStyle.Render("Continue? (y/n)")
	if m.title != "" {
		body = styles.ModalTitleStyle.Render(m.title) + "\n\n" + body
	}
	return styles.ModalStyle.Render(body)
}

// Confirmed returns true if the user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if the user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}

// Done reports whether the modal has been answered.
func (m ConfirmModal) Done() bool {
	return m.confirmed || m.cancelled
}
