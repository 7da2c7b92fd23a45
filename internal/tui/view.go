package tui

import "github.com/hay-kot/lectern/internal/core/reader"

const unknownFocus = "unknown"

// focusTarget is the pane that receives navigation keys.
type focusTarget int

const (
	focusDocument focusTarget = iota
	focusSidebar
)

func (f focusTarget) String() string {
	switch f {
	case focusDocument:
		return "document"
	case focusSidebar:
		return "sidebar"
	default:
		return unknownFocus
	}
}

// Compositor depths, lowest first.
const (
	zPopup = iota + 1
	zGlobal
	zModal
	zToast
)

const (
	sidebarWidth = 34
	toolbarRows  = 1
)

// box is a rectangle on screen.
type box struct {
	X, Y, W, H int
}

// inner returns the area inside a one-cell border.
func (b box) inner() box {
	return box{X: b.X + 1, Y: b.Y + 1, W: max(b.W-2, 0), H: max(b.H-2, 0)}
}

// layout is the screen geometry of one frame.
type layout struct {
	banner  bool
	sidebar *box
	views   map[reader.ViewID]box
}

// computeLayout splits the screen into toolbar, optional error banner,
// optional sidebar, and one or two document views.
func computeLayout(st reader.State, width, height int) layout {
	l := layout{views: map[reader.ViewID]box{}}

	top := toolbarRows
	if st.ErrorMessage != "" {
		l.banner = true
		top++
	}
	body := box{X: 0, Y: top, W: width, H: max(height-top, 3)}

	if st.SidebarOpen {
		sw := min(sidebarWidth, body.W/2)
		l.sidebar = &box{X: body.X, Y: body.Y, W: sw, H: body.H}
		body.X += sw
		body.W -= sw
	}

	switch {
	case !st.SplitEnabled():
		l.views[reader.ViewPrimary] = body
	case st.SplitType == reader.SplitHorizontal:
		h := body.H / 2
		l.views[reader.ViewPrimary] = box{X: body.X, Y: body.Y, W: body.W, H: h}
		l.views[reader.ViewSecondary] = box{X: body.X, Y: body.Y + h, W: body.W, H: body.H - h}
	default:
		w := body.W / 2
		l.views[reader.ViewPrimary] = box{X: body.X, Y: body.Y, W: w, H: body.H}
		l.views[reader.ViewSecondary] = box{X: body.X + w, Y: body.Y, W: body.W - w, H: body.H}
	}
	return l
}
