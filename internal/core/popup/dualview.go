package popup

import (
	"github.com/hay-kot/lectern/internal/core/reader"
)

// Handlers receives events raised inside a view. Every callback carries the
// id of the view that raised it. Nil callbacks are skipped.
type Handlers struct {
	AddAnnotation                     func(view reader.ViewID, draft reader.AnnotationDraft)
	UpdateAnnotations                 func(view reader.ViewID, patches []reader.AnnotationPatch)
	AddToNote                         func(view reader.ViewID, drafts []reader.AnnotationDraft)
	ChangeTextSelectionAnnotationMode func(view reader.ViewID, mode reader.AnnotationType)
	ChangeFindState                   func(view reader.ViewID, fs reader.FindState)
	FindNext                          func(view reader.ViewID)
	FindPrevious                      func(view reader.ViewID)
	ConvertSearchResults              func(view reader.ViewID)
	CloseOverlayPopup                 func(view reader.ViewID)
	OpenLink                          func(view reader.ViewID, url string)
	Navigate                          func(view reader.ViewID, dest reader.Destination)
	OpenTagsPopup                     func(view reader.ViewID, annotationID string)
	OpenPageLabelPopup                func(view reader.ViewID, annotationID string)
}

// ViewHandlers are Handlers bound to one view. Leaf components call these
// without knowing which view they live in.
type ViewHandlers struct {
	View reader.ViewID

	AddAnnotation                     func(draft reader.AnnotationDraft)
	UpdateAnnotations                 func(patches []reader.AnnotationPatch)
	AddToNote                         func(drafts []reader.AnnotationDraft)
	ChangeTextSelectionAnnotationMode func(mode reader.AnnotationType)
	ChangeFindState                   func(fs reader.FindState)
	FindNext                          func()
	FindPrevious                      func()
	ConvertSearchResults              func()
	CloseOverlayPopup                 func()
	OpenLink                          func(url string)
	Navigate                          func(dest reader.Destination)
	OpenTagsPopup                     func(annotationID string)
	OpenPageLabelPopup                func(annotationID string)
}

// Bind tags every callback with view. Callbacks that are nil in h stay nil.
func (h Handlers) Bind(view reader.ViewID) ViewHandlers {
	vh := ViewHandlers{View: view}
	if f := h.AddAnnotation; f != nil {
		vh.AddAnnotation = func(d reader.AnnotationDraft) { f(view, d) }
	}
	if f := h.UpdateAnnotations; f != nil {
		vh.UpdateAnnotations = func(p []reader.AnnotationPatch) { f(view, p) }
	}
	if f := h.AddToNote; f != nil {
		vh.AddToNote = func(d []reader.AnnotationDraft) { f(view, d) }
	}
	if f := h.ChangeTextSelectionAnnotationMode; f != nil {
		vh.ChangeTextSelectionAnnotationMode = func(m reader.AnnotationType) { f(view, m) }
	}
	if f := h.ChangeFindState; f != nil {
		vh.ChangeFindState = func(fs reader.FindState) { f(view, fs) }
	}
	if f := h.FindNext; f != nil {
		vh.FindNext = func() { f(view) }
	}
	if f := h.FindPrevious; f != nil {
		vh.FindPrevious = func() { f(view) }
	}
	if f := h.ConvertSearchResults; f != nil {
		vh.ConvertSearchResults = func() { f(view) }
	}
	if f := h.CloseOverlayPopup; f != nil {
		vh.CloseOverlayPopup = func() { f(view) }
	}
	if f := h.OpenLink; f != nil {
		vh.OpenLink = func(url string) { f(view, url) }
	}
	if f := h.Navigate; f != nil {
		vh.Navigate = func(d reader.Destination) { f(view, d) }
	}
	if f := h.OpenTagsPopup; f != nil {
		vh.OpenTagsPopup = func(id string) { f(view, id) }
	}
	if f := h.OpenPageLabelPopup; f != nil {
		vh.OpenPageLabelPopup = func(id string) { f(view, id) }
	}
	return vh
}

// Resolved holds the resolution of both views. Secondary is nil unless split
// view is enabled.
type Resolved struct {
	Primary   Resolution
	Secondary *Resolution
}

// Views returns the resolutions in render order.
func (r Resolved) Views() []Resolution {
	out := []Resolution{r.Primary}
	if r.Secondary != nil {
		out = append(out, *r.Secondary)
	}
	return out
}

// VisibleKeys returns the set of slots with a visible popup.
func (r Resolved) VisibleKeys() map[reader.SlotKey]bool {
	keys := map[reader.SlotKey]bool{}
	for _, res := range r.Views() {
		for _, p := range res.Visible() {
			keys[p.Key] = true
		}
	}
	return keys
}

// BoundView is a resolved view together with its tagged handlers.
type BoundView struct {
	Resolution Resolution
	Handlers   ViewHandlers
}

// Coordinator replicates popup resolution across the primary and the
// optional secondary view.
type Coordinator struct {
	resolve func(reader.ViewID, reader.State) Resolution
}

// NewCoordinator returns a coordinator backed by Resolve.
func NewCoordinator() *Coordinator {
	return &Coordinator{resolve: Resolve}
}

// ResolveAll resolves the primary view and, when split view is enabled, the
// secondary view. The secondary view is never computed otherwise.
func (c *Coordinator) ResolveAll(s reader.State) Resolved {
	out := Resolved{Primary: c.resolve(reader.ViewPrimary, s)}
	if s.SplitEnabled() {
		sec := c.resolve(reader.ViewSecondary, s)
		out.Secondary = &sec
	}
	return out
}

// Wire resolves every existing view and binds h to each of them. No
// handlers are bound for the secondary view when split view is disabled.
func (c *Coordinator) Wire(s reader.State, h Handlers) []BoundView {
	resolved := c.ResolveAll(s)
	views := resolved.Views()
	out := make([]BoundView, 0, len(views))
	for _, res := range views {
		out = append(out, BoundView{Resolution: res, Handlers: h.Bind(res.View)})
	}
	return out
}
