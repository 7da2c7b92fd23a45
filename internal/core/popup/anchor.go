package popup

import (
	"github.com/hay-kot/lectern/internal/core/reader"
)

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// Side is where a popup sits relative to its anchor rect.
type Side int

const (
	SideBelow Side = iota
	SideAbove
)

// Placement is the computed top-left corner of a popup.
type Placement struct {
	X    int
	Y    int
	Side Side
}

// Place positions a popup of the given size next to rect inside viewport.
// The popup goes below the rect when it fits, above otherwise, centred on
// the rect and clamped to the viewport.
func Place(rect reader.Rect, size, viewport Size, padding int) Placement {
	p := Placement{
		X:    rect.CenterX() - size.Width/2,
		Y:    rect.Bottom() + padding,
		Side: SideBelow,
	}

	if p.Y+size.Height > viewport.Height {
		if above := rect.Y - padding - size.Height; above >= 0 {
			p.Y, p.Side = above, SideAbove
		}
	}

	p.X = clamp(p.X, 0, viewport.Width-size.Width)
	p.Y = clamp(p.Y, 0, viewport.Height-size.Height)
	return p
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

type anchored struct {
	identity  reader.Identity
	placement Placement
}

// Anchor remembers the placement of every slot so a popup whose identity is
// unchanged keeps its position while the underlying rect jitters. Anchor is
// owned by the render loop and is not safe for concurrent use.
type Anchor struct {
	padding int
	slots   map[reader.SlotKey]anchored
}

// NewAnchor creates an anchor that keeps padding cells between a popup and
// its rect.
func NewAnchor(padding int) *Anchor {
	return &Anchor{
		padding: max(padding, 0),
		slots:   make(map[reader.SlotKey]anchored),
	}
}

// Resolve returns the placement for the popup in slot key. The previous
// placement is reused when params carry the same identity as last time;
// otherwise it is recomputed from params.Rect.
func (a *Anchor) Resolve(key reader.SlotKey, params reader.PopupParams, size, viewport Size) Placement {
	if prev, ok := a.slots[key]; ok && !params.Identity.Ephemeral() && prev.identity == params.Identity {
		return prev.placement
	}

	p := Place(params.Rect, size, viewport, a.padding)
	a.slots[key] = anchored{identity: params.Identity, placement: p}
	return p
}

// Forget drops the remembered placement of a slot.
func (a *Anchor) Forget(key reader.SlotKey) {
	delete(a.slots, key)
}

// Retain forgets every slot not in visible, so a popup that disappears and
// later comes back is placed from scratch.
func (a *Anchor) Retain(visible map[reader.SlotKey]bool) {
	for k := range a.slots {
		if !visible[k] {
			delete(a.slots, k)
		}
	}
}

// Len returns the number of remembered slots.
func (a *Anchor) Len() int { return len(a.slots) }
