package tui

import (
	"slices"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/tui/components"
)

// modalKind is the composer-owned modal currently open.
type modalKind int

const (
	modalNone modalKind = iota
	modalAuthor
	modalComment
	modalTags
	modalConfirmDelete
	modalHelp
)

// pendingCreate is annotation work waiting for the author name prompt.
type pendingCreate struct {
	view    reader.ViewID
	draft   *reader.AnnotationDraft
	convert bool
}

// ModalCoordinator owns the composer's own modals and the input widgets of
// the state-driven global popups, and renders both as overlays.
type ModalCoordinator struct {
	Kind    modalKind
	Input   textinput.Model
	Editor  textarea.Model
	Confirm components.ConfirmModal
	Help    *components.HelpDialog

	// Target is the annotation a comment, tags, or delete modal acts on.
	Target  string
	Pending *pendingCreate

	// Global popup widgets, reset whenever the active global popup changes.
	GlobalKind   reader.GlobalPopupKind
	GlobalInput  textinput.Model
	GlobalCursor int

	width, height int
}

// NewModalCoordinator creates a coordinator with nothing open.
func NewModalCoordinator() *ModalCoordinator {
	return &ModalCoordinator{}
}

// SetSize updates the available dimensions for modal rendering.
func (mc *ModalCoordinator) SetSize(w, h int) {
	mc.width, mc.height = w, h
}

func (mc *ModalCoordinator) size() (int, int) {
	w, h := mc.width, mc.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return w, h
}

// Open reports whether a composer modal is open.
func (mc *ModalCoordinator) Open() bool { return mc.Kind != modalNone }

// ShowAuthor opens the author name prompt.
func (mc *ModalCoordinator) ShowAuthor(current string, pending *pendingCreate) {
	mc.Kind = modalAuthor
	mc.Input = components.NewInput("Your name", current, 36)
	mc.Pending = pending
}

// ShowComment opens the comment editor for an annotation.
func (mc *ModalCoordinator) ShowComment(id, comment string) {
	mc.Kind = modalComment
	mc.Target = id
	mc.Editor = components.NewTextArea("Markdown comment", comment, 48, 6)
}

// ShowTags opens the tag editor for an annotation. Tags are comma
// separated.
func (mc *ModalCoordinator) ShowTags(id, tags string) {
	mc.Kind = modalTags
	mc.Target = id
	mc.Input = components.NewInput("tag, another tag", tags, 40)
}

// ShowConfirmDelete asks before deleting an annotation.
func (mc *ModalCoordinator) ShowConfirmDelete(id, text string) {
	mc.Kind = modalConfirmDelete
	mc.Target = id
	mc.Confirm = components.NewConfirmModal("Delete annotation", ansi.Truncate(text, 48, "…"))
}

// ShowHelp opens the keybinding help.
func (mc *ModalCoordinator) ShowHelp(sections []components.HelpDialogSection) {
	mc.Kind = modalHelp
	mc.Help = components.NewHelpDialog("Keyboard Shortcuts", sections)
}

// Dismiss closes the composer modal. Pending work is dropped.
func (mc *ModalCoordinator) Dismiss() {
	mc.Kind = modalNone
	mc.Target = ""
	mc.Pending = nil
	mc.Help = nil
}

// HasEditorFocus reports whether typed keys belong to a text widget.
func (mc *ModalCoordinator) HasEditorFocus() bool {
	switch mc.Kind { //nolint:exhaustive // only editor-bearing modals return true
	case modalAuthor, modalComment, modalTags:
		return true
	}
	switch mc.GlobalKind { //nolint:exhaustive // only input-bearing popups return true
	case reader.GlobalLabel, reader.GlobalPassword:
		return true
	}
	return false
}

// SyncGlobal resets the global popup widgets when the popup shown changes.
func (mc *ModalCoordinator) SyncGlobal(st reader.State) {
	active := st.ActiveGlobalPopups()
	kind := reader.GlobalPopupKind("")
	if len(active) > 0 {
		kind = active[0].Kind
	}
	if kind == mc.GlobalKind {
		return
	}

	mc.GlobalKind = kind
	mc.GlobalCursor = 0
	switch kind { //nolint:exhaustive // only some popups carry widget state
	case reader.GlobalLabel:
		mc.GlobalInput = components.NewInput("", active[0].Label.Label, 24)
	case reader.GlobalPassword:
		mc.GlobalInput = components.NewPasswordInput(30)
	case reader.GlobalAppearance:
		mc.GlobalCursor = max(slices.Index(splitOrder, st.SplitType), 0)
	case reader.GlobalTheme:
		mc.GlobalCursor = max(slices.Index(styles.ThemeNames(), active[0].Theme.Name), 0)
	}
}

// globalOptions returns the number of entries of the list-style global
// popup gp, or zero for popups without a cursor.
func globalOptions(gp reader.GlobalPopup) int {
	switch gp.Kind { //nolint:exhaustive // only list popups have options
	case reader.GlobalContextMenu:
		return len(gp.Context.Items)
	case reader.GlobalAppearance:
		return len(splitOrder)
	case reader.GlobalTheme:
		return len(styles.ThemeNames())
	}
	return 0
}

// Global renders the first active global popup over bg. Only one is ever
// drawn; extra ones are logged.
func (mc *ModalCoordinator) Global(st reader.State, bg string, catalog *i18n.Catalog, logger zerolog.Logger) string {
	active := st.ActiveGlobalPopups()
	if len(active) == 0 {
		return bg
	}
	if len(active) > 1 {
		logger.Warn().Int("count", len(active)).Str("shown", string(active[0].Kind)).Msg("several global popups active, rendering the first")
	}

	w, h := mc.size()
	gp := active[0]

	switch gp.Kind {
	case reader.GlobalContextMenu:
		menu := components.MenuModal(gp.Context.Items, mc.GlobalCursor)
		return placeAt(bg, menu, gp.Context.X, gp.Context.Y, w, h, zGlobal)
	case reader.GlobalLabel:
		body := components.InputModal(catalog.T(i18n.EditPageLabel), "", mc.GlobalInput.View(), "enter apply  esc cancel")
		return centerAt(bg, body, w, h, zGlobal)
	case reader.GlobalPassword:
		body := components.PasswordModal(catalog.T(i18n.PasswordRequired), mc.GlobalInput.View(), gp.Password.Error)
		return centerAt(bg, body, w, h, zGlobal)
	case reader.GlobalPrint:
		body := components.PrintModal(catalog.Tf(i18n.PrintProgress, gp.Print.Percent), gp.Print.Percent)
		return centerAt(bg, body, w, h, zGlobal)
	case reader.GlobalAppearance:
		body := components.ChoiceModal(catalog.T(i18n.Appearance), splitChoices(), mc.GlobalCursor, splitLabel(st.SplitType))
		return centerAt(bg, body, w, h, zGlobal)
	case reader.GlobalTheme:
		body := components.ChoiceModal(catalog.T(i18n.Theme), styles.ThemeNames(), mc.GlobalCursor, gp.Theme.Name)
		return centerAt(bg, body, w, h, zGlobal)
	}
	return bg
}

// Overlay renders the open composer modal over bg.
func (mc *ModalCoordinator) Overlay(bg string, catalog *i18n.Catalog) string {
	w, h := mc.size()

	switch mc.Kind {
	case modalAuthor:
		body := components.InputModal(catalog.T(i18n.ChangeAuthorName), catalog.T(i18n.EnterAuthorName), mc.Input.View(), "enter save  esc skip")
		return centerAt(bg, body, w, h, zModal)
	case modalComment:
		body := components.InputModal(styles.IconComment+" "+catalog.T(i18n.Comment), "", mc.Editor.View(), "ctrl+s save  esc cancel")
		return centerAt(bg, body, w, h, zModal)
	case modalTags:
		body := components.InputModal(styles.IconTag+" "+catalog.T(i18n.Tags), "", mc.Input.View(), "enter save  esc cancel")
		return centerAt(bg, body, w, h, zModal)
	case modalConfirmDelete:
		return centerAt(bg, mc.Confirm.View(), w, h, zModal)
	case modalHelp:
		if mc.Help != nil {
			return centerAt(bg, mc.Help.View(), w, h, zModal)
		}
	}
	return bg
}

var splitOrder = []reader.SplitType{reader.SplitNone, reader.SplitVertical, reader.SplitHorizontal}

func splitChoices() []string {
	out := make([]string, len(splitOrder))
	for i, s := range splitOrder {
		out[i] = splitLabel(s)
	}
	return out
}

func splitLabel(s reader.SplitType) string {
	if s == reader.SplitNone {
		return "single view"
	}
	return string(s) + " split"
}
