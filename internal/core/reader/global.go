package reader

// GlobalPopupKind names a view-independent popup.
type GlobalPopupKind string

const (
	GlobalContextMenu GlobalPopupKind = "context-menu"
	GlobalLabel       GlobalPopupKind = "label"
	GlobalPassword    GlobalPopupKind = "password"
	GlobalPrint       GlobalPopupKind = "print"
	GlobalAppearance  GlobalPopupKind = "appearance"
	GlobalTheme       GlobalPopupKind = "theme"
)

// ContextMenuItem is one entry of a context menu.
type ContextMenuItem struct {
	Label    string `yaml:"label"`
	Action   string `yaml:"action"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// ContextMenu is anchored at a viewport point.
type ContextMenu struct {
	X     int               `yaml:"x"`
	Y     int               `yaml:"y"`
	Items []ContextMenuItem `yaml:"items"`
}

// LabelPopup edits the page label of annotations.
type LabelPopup struct {
	AnnotationIDs []string `yaml:"annotation_ids"`
	Label         string   `yaml:"label"`
}

// PasswordPopup asks for the document password.
type PasswordPopup struct {
	Error bool `yaml:"error"`
}

// PrintPopup reports print progress.
type PrintPopup struct {
	Percent int `yaml:"percent"`
}

// AppearancePopup edits scroll, spread, and split modes.
type AppearancePopup struct {
	ScrollMode string `yaml:"scroll_mode"`
	SpreadMode string `yaml:"spread_mode"`
}

// ThemePopup edits a custom theme.
type ThemePopup struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// GlobalPopup is the one global popup to render.
type GlobalPopup struct {
	Kind       GlobalPopupKind
	Context    *ContextMenu
	Label      *LabelPopup
	Password   *PasswordPopup
	Print      *PrintPopup
	Appearance *AppearancePopup
	Theme      *ThemePopup
}

// ActiveGlobalPopups lists every non-nil global popup field in render
// precedence. Producers keep at most one set; the list exists so consumers
// can detect a violation.
func (s State) ActiveGlobalPopups() []GlobalPopup {
	var out []GlobalPopup
	if s.ContextMenu != nil {
		out = append(out, GlobalPopup{Kind: GlobalContextMenu, Context: s.ContextMenu})
	}
	if s.LabelPopup != nil {
		out = append(out, GlobalPopup{Kind: GlobalLabel, Label: s.LabelPopup})
	}
	if s.PasswordPopup != nil {
		out = append(out, GlobalPopup{Kind: GlobalPassword, Password: s.PasswordPopup})
	}
	if s.PrintPopup != nil {
		out = append(out, GlobalPopup{Kind: GlobalPrint, Print: s.PrintPopup})
	}
	if s.AppearancePopup != nil {
		out = append(out, GlobalPopup{Kind: GlobalAppearance, Appearance: s.AppearancePopup})
	}
	if s.ThemePopup != nil {
		out = append(out, GlobalPopup{Kind: GlobalTheme, Theme: s.ThemePopup})
	}
	return out
}

// ClearGlobalPopups returns a copy of s without any global popup.
func (s State) ClearGlobalPopups() State {
	s.ContextMenu = nil
	s.LabelPopup = nil
	s.PasswordPopup = nil
	s.PrintPopup = nil
	s.AppearancePopup = nil
	s.ThemePopup = nil
	return s
}
