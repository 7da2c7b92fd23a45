// Package reader defines the shared UI state of the document reader: the
// per-view popup slots, the annotation collection, and the global popups.
// Components consume State snapshots and never mutate them.
package reader

import "fmt"

// ViewID identifies one of the side-by-side document views.
type ViewID int

const (
	ViewPrimary ViewID = iota
	ViewSecondary
)

// Views lists every view id in render order.
var Views = [...]ViewID{ViewPrimary, ViewSecondary}

func (v ViewID) String() string {
	switch v {
	case ViewPrimary:
		return "primary"
	case ViewSecondary:
		return "secondary"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Valid reports whether v is a known view.
func (v ViewID) Valid() bool {
	return v == ViewPrimary || v == ViewSecondary
}

// SlotKind names a per-view popup slot.
type SlotKind int

const (
	SlotSelection SlotKind = iota
	SlotAnnotation
	SlotOverlay
	SlotFind
)

// Slots lists every slot kind.
var Slots = [...]SlotKind{SlotSelection, SlotAnnotation, SlotOverlay, SlotFind}

func (k SlotKind) String() string {
	switch k {
	case SlotSelection:
		return "selection"
	case SlotAnnotation:
		return "annotation"
	case SlotOverlay:
		return "overlay"
	case SlotFind:
		return "find"
	}
	return fmt.Sprintf("slot(%d)", int(k))
}

// SlotKey addresses one popup slot of one view.
type SlotKey struct {
	View ViewID
	Slot SlotKind
}

func (k SlotKey) String() string {
	return k.View.String() + "/" + k.Slot.String()
}

// AllSlotKeys enumerates the complete slot key space.
func AllSlotKeys() []SlotKey {
	keys := make([]SlotKey, 0, len(Views)*len(Slots))
	for _, v := range Views {
		for _, s := range Slots {
			keys = append(keys, SlotKey{View: v, Slot: s})
		}
	}
	return keys
}

// Rect is an axis-aligned box in viewport cells.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int { return r.Y + r.Height }

// CenterX returns the horizontal centre of the rect.
func (r Rect) CenterX() int { return r.X + r.Width/2 }

// PopupParams is what a popup needs to position itself.
type PopupParams struct {
	Rect     Rect
	Identity Identity
}
