package reader

import "github.com/hay-kot/lectern/internal/core/textrun"

// SidebarView selects the sidebar pane.
type SidebarView string

const (
	SidebarThumbnails  SidebarView = "thumbnails"
	SidebarOutline     SidebarView = "outline"
	SidebarAnnotations SidebarView = "annotations"
)

// SplitType controls the secondary view.
type SplitType string

const (
	SplitNone       SplitType = ""
	SplitHorizontal SplitType = "horizontal"
	SplitVertical   SplitType = "vertical"
)

// OverlayKind is the flavour of an overlay popup.
type OverlayKind string

const (
	OverlayReference OverlayKind = "reference"
	OverlayLink      OverlayKind = "link"
	OverlayCitation  OverlayKind = "citation"
)

// Destination is an in-document navigation target.
type Destination struct {
	PageIndex int    `yaml:"page_index" json:"pageIndex"`
	Label     string `yaml:"label,omitempty" json:"label,omitempty"`
}

// SelectionPopup holds the text selection the popup acts on.
type SelectionPopup struct {
	Rect  Rect            `yaml:"rect"`
	Draft AnnotationDraft `yaml:"annotation"`
}

// Params returns the positioning parameters. Selections have no durable
// identity, so every call yields a fresh one.
func (p SelectionPopup) Params() PopupParams {
	return PopupParams{Rect: p.Rect, Identity: EphemeralIdentity()}
}

// AnnotationPopup references an annotation by id.
type AnnotationPopup struct {
	Rect         Rect   `yaml:"rect"`
	AnnotationID string `yaml:"annotation_id"`
}

// Params returns the positioning parameters keyed by annotation id.
func (p AnnotationPopup) Params() PopupParams {
	return PopupParams{Rect: p.Rect, Identity: StableIdentity("annotation:" + p.AnnotationID)}
}

// OverlayPopup previews a reference, link, or citation.
type OverlayPopup struct {
	Rect  Rect          `yaml:"rect"`
	ID    string        `yaml:"id"`
	Kind  OverlayKind   `yaml:"kind"`
	URL   string        `yaml:"url,omitempty"`
	Dest  *Destination  `yaml:"dest,omitempty"`
	Chars []textrun.Run `yaml:"chars,omitempty"`
}

// Params returns the positioning parameters keyed by overlay id, falling
// back to the link target.
func (p OverlayPopup) Params() PopupParams {
	key := p.ID
	if key == "" {
		key = p.URL
	}
	return PopupParams{Rect: p.Rect, Identity: StableIdentity("overlay:" + key)}
}

// FindResult is the position of the current match.
type FindResult struct {
	Index int `yaml:"index"`
	Total int `yaml:"total"`
}

// FindState is the per-view search state.
type FindState struct {
	PopupOpen     bool        `yaml:"popup_open"`
	Active        bool        `yaml:"active"`
	Query         string      `yaml:"query"`
	HighlightAll  bool        `yaml:"highlight_all"`
	CaseSensitive bool        `yaml:"case_sensitive"`
	EntireWord    bool        `yaml:"entire_word"`
	Result        *FindResult `yaml:"result,omitempty"`
}

// HasResults reports whether the last search produced matches.
func (f FindState) HasResults() bool {
	return f.Result != nil && f.Result.Total > 0
}

// ViewStats describes navigation state of a view.
type ViewStats struct {
	PageIndex                 int    `yaml:"page_index"`
	PageLabel                 string `yaml:"page_label"`
	PagesCount                int    `yaml:"pages_count"`
	Percentage                string `yaml:"percentage"`
	CanZoomIn                 bool   `yaml:"can_zoom_in"`
	CanZoomOut                bool   `yaml:"can_zoom_out"`
	CanZoomReset              bool   `yaml:"can_zoom_reset"`
	CanNavigateBack           bool   `yaml:"can_navigate_back"`
	CanNavigateToPreviousPage bool   `yaml:"can_navigate_to_previous_page"`
	CanNavigateToNextPage     bool   `yaml:"can_navigate_to_next_page"`
}

// ViewState holds the popup slots and statistics of one view. Several slots
// may hold data at once; visibility is decided by the popup resolver.
type ViewState struct {
	SelectionPopup  *SelectionPopup  `yaml:"selection_popup,omitempty"`
	AnnotationPopup *AnnotationPopup `yaml:"annotation_popup,omitempty"`
	OverlayPopup    *OverlayPopup    `yaml:"overlay_popup,omitempty"`
	FindState       FindState        `yaml:"find"`
	Stats           ViewStats        `yaml:"stats"`
}

// Tool is the active annotation tool.
type Tool struct {
	Type  AnnotationType `yaml:"type"`
	Color string         `yaml:"color"`
}

// State is the single shared UI state. It is a value: producers build a new
// State for every change and consumers treat what they receive as read-only.
type State struct {
	ReadOnly                    bool           `yaml:"read_only"`
	SidebarOpen                 bool           `yaml:"sidebar_open"`
	SidebarView                 SidebarView    `yaml:"sidebar_view"`
	SplitType                   SplitType      `yaml:"split_type"`
	FocusedView                 ViewID         `yaml:"-"`
	Annotations                 []Annotation   `yaml:"annotations"`
	SelectedAnnotationIDs       []string       `yaml:"selected_annotation_ids"`
	TextSelectionAnnotationMode AnnotationType `yaml:"text_selection_annotation_mode"`
	EnableAddToNote             bool           `yaml:"enable_add_to_note"`
	Tool                        Tool           `yaml:"tool"`
	Views                       [2]ViewState   `yaml:"-"`

	ContextMenu     *ContextMenu     `yaml:"context_menu,omitempty"`
	LabelPopup      *LabelPopup      `yaml:"label_popup,omitempty"`
	PasswordPopup   *PasswordPopup   `yaml:"password_popup,omitempty"`
	PrintPopup      *PrintPopup      `yaml:"print_popup,omitempty"`
	AppearancePopup *AppearancePopup `yaml:"appearance_popup,omitempty"`
	ThemePopup      *ThemePopup      `yaml:"theme_popup,omitempty"`

	ErrorMessage string `yaml:"error_message,omitempty"`
}

// SplitEnabled reports whether the secondary view exists.
func (s State) SplitEnabled() bool { return s.SplitType != SplitNone }

// View returns the state of the given view.
func (s State) View(id ViewID) ViewState {
	if !id.Valid() {
		return ViewState{}
	}
	return s.Views[id]
}

// WithView returns a copy of s with the view replaced.
func (s State) WithView(id ViewID, vs ViewState) State {
	if id.Valid() {
		s.Views[id] = vs
	}
	return s
}

// Focused returns the view the toolbar reflects. It falls back to the
// primary view when the secondary one does not exist.
func (s State) Focused() ViewID {
	if s.FocusedView == ViewSecondary && s.SplitEnabled() {
		return ViewSecondary
	}
	return ViewPrimary
}

// HasSlotData reports whether the slot holds data, regardless of whether it
// would be visible.
func (s State) HasSlotData(k SlotKey) bool {
	vs := s.View(k.View)
	switch k.Slot {
	case SlotSelection:
		return vs.SelectionPopup != nil
	case SlotAnnotation:
		return vs.AnnotationPopup != nil
	case SlotOverlay:
		return vs.OverlayPopup != nil
	case SlotFind:
		return vs.FindState.PopupOpen
	}
	return false
}

// ClearSlot returns a copy of s with the slot emptied.
func (s State) ClearSlot(k SlotKey) State {
	vs := s.View(k.View)
	switch k.Slot {
	case SlotSelection:
		vs.SelectionPopup = nil
	case SlotAnnotation:
		vs.AnnotationPopup = nil
	case SlotOverlay:
		vs.OverlayPopup = nil
	case SlotFind:
		vs.FindState.PopupOpen = false
	}
	return s.WithView(k.View, vs)
}

// Annotation resolves an id against the authoritative collection.
func (s State) Annotation(id string) (Annotation, bool) {
	return FindAnnotation(s.Annotations, id)
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	c := s
	c.Annotations = make([]Annotation, len(s.Annotations))
	for i, a := range s.Annotations {
		a.Tags = append([]Tag(nil), a.Tags...)
		c.Annotations[i] = a
	}
	c.SelectedAnnotationIDs = append([]string(nil), s.SelectedAnnotationIDs...)
	return c
}
