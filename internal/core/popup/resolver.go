// Package popup decides which in-document popups are visible for each view
// and where they are placed.
package popup

import (
	"github.com/hay-kot/lectern/internal/core/reader"
)

// Popup is a visible popup with everything needed to render it.
type Popup struct {
	Key    reader.SlotKey
	Params reader.PopupParams

	Selection  *reader.SelectionPopup
	Annotation *reader.Annotation
	Overlay    *reader.OverlayPopup
	Find       *reader.FindState
}

// Resolution is the outcome of resolving one view. Popup is the winner among
// the overlay, annotation, and selection slots; Find is decided on its own
// and may be visible alongside Popup.
type Resolution struct {
	View  reader.ViewID
	Popup *Popup
	Find  *Popup
}

// Visible returns the visible popups, find last.
func (r Resolution) Visible() []*Popup {
	var out []*Popup
	if r.Popup != nil {
		out = append(out, r.Popup)
	}
	if r.Find != nil {
		out = append(out, r.Find)
	}
	return out
}

// Empty reports whether nothing is visible.
func (r Resolution) Empty() bool { return r.Popup == nil && r.Find == nil }

type rule struct {
	slot  reader.SlotKind
	match func(view reader.ViewID, s reader.State) *Popup
}

// precedence is evaluated top to bottom; the first rule that matches wins.
var precedence = []rule{
	{slot: reader.SlotOverlay, match: overlayPopup},
	{slot: reader.SlotAnnotation, match: annotationPopup},
	{slot: reader.SlotSelection, match: selectionPopup},
}

// Precedence returns the slot order used by Resolve.
func Precedence() []reader.SlotKind {
	out := make([]reader.SlotKind, len(precedence))
	for i, r := range precedence {
		out[i] = r.slot
	}
	return out
}

// Resolve computes the visible popups of a view. Slots that reference an
// entity that no longer exists resolve to nothing.
func Resolve(view reader.ViewID, s reader.State) Resolution {
	res := Resolution{View: view, Find: findPopup(view, s)}
	for _, r := range precedence {
		if p := r.match(view, s); p != nil {
			res.Popup = p
			break
		}
	}
	return res
}

// ResolveSlot applies the visibility predicate of a single slot, ignoring
// precedence. It returns nil when the slot would not be shown.
func ResolveSlot(view reader.ViewID, slot reader.SlotKind, s reader.State) *Popup {
	switch slot {
	case reader.SlotSelection:
		return selectionPopup(view, s)
	case reader.SlotAnnotation:
		return annotationPopup(view, s)
	case reader.SlotOverlay:
		return overlayPopup(view, s)
	case reader.SlotFind:
		return findPopup(view, s)
	}
	return nil
}

func overlayPopup(view reader.ViewID, s reader.State) *Popup {
	op := s.View(view).OverlayPopup
	if op == nil {
		return nil
	}
	return &Popup{
		Key:     reader.SlotKey{View: view, Slot: reader.SlotOverlay},
		Params:  op.Params(),
		Overlay: op,
	}
}

func annotationPopup(view reader.ViewID, s reader.State) *Popup {
	ap := s.View(view).AnnotationPopup
	if ap == nil {
		return nil
	}
	// the sidebar's inline editor owns the annotation while it is shown
	if s.SidebarOpen && s.SidebarView == reader.SidebarAnnotations {
		return nil
	}
	a, ok := s.Annotation(ap.AnnotationID)
	if !ok {
		return nil
	}
	return &Popup{
		Key:        reader.SlotKey{View: view, Slot: reader.SlotAnnotation},
		Params:     ap.Params(),
		Annotation: &a,
	}
}

func selectionPopup(view reader.ViewID, s reader.State) *Popup {
	sp := s.View(view).SelectionPopup
	if sp == nil || s.ReadOnly {
		return nil
	}
	return &Popup{
		Key:       reader.SlotKey{View: view, Slot: reader.SlotSelection},
		Params:    sp.Params(),
		Selection: sp,
	}
}

func findPopup(view reader.ViewID, s reader.State) *Popup {
	fs := s.View(view).FindState
	if !fs.PopupOpen {
		return nil
	}
	return &Popup{
		Key:    reader.SlotKey{View: view, Slot: reader.SlotFind},
		Params: reader.PopupParams{Identity: reader.StableIdentity("find:" + view.String())},
		Find:   &fs,
	}
}
