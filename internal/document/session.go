package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/pkg/kv"
	"github.com/hay-kot/lectern/pkg/randid"
)

var (
	// ErrUnknownAnnotation is returned when an id does not resolve.
	ErrUnknownAnnotation = errors.New("unknown annotation")
	// ErrReadOnly is returned for edits of a read-only document or annotation.
	ErrReadOnly = errors.New("read-only")
	// ErrPageRange is returned for navigation outside the document.
	ErrPageRange = errors.New("page out of range")
)

// Options configures a Session.
type Options struct {
	ReadOnly        bool
	EnableAddToNote bool
	Mode            reader.AnnotationType
	Tool            reader.Tool
	// Palette is used when neither the draft nor the tool carries a color.
	Palette []string
	Author  func() string
	Now     func() time.Time
	NewID   func() string
	Logger  zerolog.Logger
}

// Session owns the single shared UI state for one open document. Every
// method produces a new state value; State returns a copy that callers may
// keep. Methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	doc     *Document
	state   reader.State
	index   *kv.Store[string, reader.Annotation]
	matches [2][]Span
	history [2][]int
	notes   []reader.AnnotationDraft
	opts    Options
	logger  zerolog.Logger
}

// NewSession opens doc with the annotations it was loaded with.
func NewSession(doc *Document, opts Options) *Session {
	if opts.Mode == "" {
		opts.Mode = reader.AnnotationHighlight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = randid.Key
	}
	if opts.Author == nil {
		opts.Author = func() string { return "" }
	}

	s := &Session{
		doc:    doc,
		index:  kv.New[string, reader.Annotation](),
		opts:   opts,
		logger: opts.Logger,
	}

	s.state = reader.State{
		ReadOnly:                    opts.ReadOnly || doc.ReadOnly,
		SidebarView:                 reader.SidebarAnnotations,
		TextSelectionAnnotationMode: opts.Mode,
		EnableAddToNote:             opts.EnableAddToNote,
		Tool:                        opts.Tool,
	}
	for _, a := range doc.Annotations {
		a.Tags = slices.Clone(a.Tags)
		if a.PageLabel == "" {
			a.PageLabel = doc.PageLabel(a.PageIndex)
		}
		s.state.Annotations = append(s.state.Annotations, a)
		s.index.Set(a.ID, a)
	}
	if doc.Locked() {
		s.state.PasswordPopup = &reader.PasswordPopup{}
	}
	s.refreshStats(reader.ViewPrimary)

	return s
}

// Document returns the open document.
func (s *Session) Document() *Document { return s.doc }

// State returns a copy of the current state.
func (s *Session) State() reader.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Replace swaps in a state produced elsewhere. Search matches are
// recomputed from the incoming find states.
func (s *Session) Replace(st reader.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st.Clone()
	s.index = kv.FromSlice(s.state.Annotations, func(a reader.Annotation) string { return a.ID })
	s.state.Annotations = s.index.Values()
	for _, v := range reader.Views {
		fs := s.state.Views[v].FindState
		s.matches[v] = s.doc.Search(fs.Query, OptionsFrom(fs))
	}
}

// Notes returns the drafts added to the note so far.
func (s *Session) Notes() []reader.AnnotationDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// Matches returns the search matches of a view.
func (s *Session) Matches(view reader.ViewID) []Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !view.Valid() {
		return nil
	}
	return slices.Clone(s.matches[view])
}

// CurrentMatch returns the focused search match of a view.
func (s *Session) CurrentMatch(view reader.ViewID) (Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !view.Valid() {
		return Span{}, false
	}
	res := s.state.Views[view].FindState.Result
	if res == nil || res.Index < 0 || res.Index >= len(s.matches[view]) {
		return Span{}, false
	}
	return s.matches[view][res.Index], true
}

// AddAnnotation creates an annotation from a draft and closes the
// selection popup of the view.
func (s *Session) AddAnnotation(view reader.ViewID, draft reader.AnnotationDraft) (reader.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ReadOnly {
		return reader.Annotation{}, ErrReadOnly
	}

	a := s.newAnnotation(draft)
	s.insert(a)
	s.state = s.state.ClearSlot(reader.SlotKey{View: view, Slot: reader.SlotSelection})
	s.commit()

	s.logger.Debug().Str("annotation", a.ID).Str("view", view.String()).Msg("annotation added")
	return a, nil
}

// UpdateAnnotations applies patches. Nothing is applied when any patch
// fails.
func (s *Session) UpdateAnnotations(view reader.ViewID, patches []reader.AnnotationPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range patches {
		a, ok := s.index.Get(p.ID)
		if !ok {
			return fmt.Errorf("update %q: %w", p.ID, ErrUnknownAnnotation)
		}
		if s.state.ReadOnly || a.ReadOnly {
			return fmt.Errorf("update %q: %w", p.ID, ErrReadOnly)
		}
	}

	now := s.opts.Now()
	for _, p := range patches {
		a, _ := s.index.Get(p.ID)
		a = p.Apply(a)
		a.DateModified = now
		s.replace(a)
	}
	s.commit()

	s.logger.Debug().Int("count", len(patches)).Str("view", view.String()).Msg("annotations updated")
	return nil
}

// DeleteAnnotations removes annotations. Popups that reference them are
// left in place; the resolver hides them.
func (s *Session) DeleteAnnotations(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		a, ok := s.index.Get(id)
		if !ok {
			return fmt.Errorf("delete %q: %w", id, ErrUnknownAnnotation)
		}
		if s.state.ReadOnly || a.ReadOnly {
			return fmt.Errorf("delete %q: %w", id, ErrReadOnly)
		}
	}

	for _, id := range ids {
		s.index.Delete(id)
		s.state.SelectedAnnotationIDs = slices.DeleteFunc(slices.Clone(s.state.SelectedAnnotationIDs), func(sel string) bool {
			return sel == id
		})
	}
	s.state.Annotations = s.index.Values()
	s.commit()
	return nil
}

// AddToNote records drafts for the note editor and closes the selection.
func (s *Session) AddToNote(view reader.ViewID, drafts []reader.AnnotationDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.EnableAddToNote {
		s.logger.Debug().Msg("add to note disabled, ignoring")
		return
	}
	s.notes = append(s.notes, drafts...)
	s.state = s.state.ClearSlot(reader.SlotKey{View: view, Slot: reader.SlotSelection})
	s.commit()
}

// ChangeTextSelectionAnnotationMode switches between highlight and underline.
func (s *Session) ChangeTextSelectionAnnotationMode(_ reader.ViewID, mode reader.AnnotationType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != reader.AnnotationHighlight && mode != reader.AnnotationUnderline {
		s.logger.Warn().Str("mode", string(mode)).Msg("unsupported text selection mode")
		return
	}
	s.state.TextSelectionAnnotationMode = mode
	for _, v := range reader.Views {
		if sp := s.state.Views[v].SelectionPopup; sp != nil {
			cp := *sp
			cp.Draft.Type = mode
			s.state.Views[v].SelectionPopup = &cp
		}
	}
	s.commit()
}

// ChangeFindState stores a new find state for the view. Matches are
// recomputed when the query or its options change.
func (s *Session) ChangeFindState(view reader.ViewID, fs reader.FindState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !view.Valid() {
		return
	}

	prev := s.state.Views[view].FindState
	changed := prev.Query != fs.Query || prev.CaseSensitive != fs.CaseSensitive || prev.EntireWord != fs.EntireWord

	fs.Active = fs.Query != ""
	fs.Result = prev.Result
	if changed || fs.Result == nil {
		s.matches[view] = s.doc.Search(fs.Query, OptionsFrom(fs))
		fs.Result = nil
		if fs.Active {
			fs.Result = &reader.FindResult{Total: len(s.matches[view])}
		}
	}
	if fs.Result != nil {
		r := *fs.Result
		fs.Result = &r
	}

	vs := s.state.Views[view]
	vs.FindState = fs
	s.state = s.state.WithView(view, vs)

	if changed && fs.HasResults() {
		s.goTo(view, s.matches[view][0].Page, false)
	}
	s.commit()
}

// FindNext focuses the next match, wrapping around.
func (s *Session) FindNext(view reader.ViewID) { s.step(view, 1) }

// FindPrevious focuses the previous match, wrapping around.
func (s *Session) FindPrevious(view reader.ViewID) { s.step(view, -1) }

func (s *Session) step(view reader.ViewID, dir int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !view.Valid() {
		return
	}
	vs := s.state.Views[view]
	n := len(s.matches[view])
	if !vs.FindState.HasResults() || n == 0 {
		return
	}

	r := *vs.FindState.Result
	r.Index = ((r.Index+dir)%n + n) % n
	vs.FindState.Result = &r
	s.state = s.state.WithView(view, vs)
	s.goTo(view, s.matches[view][r.Index].Page, false)
	s.commit()
}

// ConvertMatches creates one annotation per search match of the view.
func (s *Session) ConvertMatches(ctx context.Context, view reader.ViewID, typ reader.AnnotationType, color string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.ReadOnly {
		return 0, ErrReadOnly
	}
	if !view.Valid() {
		return 0, fmt.Errorf("convert: invalid view %d", int(view))
	}

	created := 0
	for _, m := range s.matches[view] {
		if err := ctx.Err(); err != nil {
			s.commit()
			return created, err
		}
		a := s.newAnnotation(reader.AnnotationDraft{
			Type:      typ,
			Color:     color,
			PageIndex: m.Page,
			Text:      s.doc.Text(m),
		})
		s.insert(a)
		created++
	}
	s.commit()
	return created, nil
}

// CloseOverlayPopup empties the overlay slot of the view.
func (s *Session) CloseOverlayPopup(view reader.ViewID) {
	s.ClearSlot(reader.SlotKey{View: view, Slot: reader.SlotOverlay})
}

// ClearSlot empties one popup slot.
func (s *Session) ClearSlot(key reader.SlotKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.ClearSlot(key)
}

// Navigate moves the view to a destination and closes its overlay popup.
func (s *Session) Navigate(view reader.ViewID, dest reader.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dest.PageIndex < 0 || dest.PageIndex >= len(s.doc.Pages) {
		return fmt.Errorf("navigate to %d: %w", dest.PageIndex, ErrPageRange)
	}
	s.state = s.state.ClearSlot(reader.SlotKey{View: view, Slot: reader.SlotOverlay})
	s.goTo(view, dest.PageIndex, true)
	s.commit()
	return nil
}

// NextPage moves the view forward one page.
func (s *Session) NextPage(view reader.ViewID) error {
	return s.Navigate(view, reader.Destination{PageIndex: s.State().View(view).Stats.PageIndex + 1})
}

// PrevPage moves the view back one page.
func (s *Session) PrevPage(view reader.ViewID) error {
	return s.Navigate(view, reader.Destination{PageIndex: s.State().View(view).Stats.PageIndex - 1})
}

// Back returns the view to the page it was on before the last navigation.
func (s *Session) Back(view reader.ViewID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !view.Valid() || len(s.history[view]) == 0 {
		return false
	}
	h := s.history[view]
	page := h[len(h)-1]
	s.history[view] = h[:len(h)-1]
	s.goTo(view, page, false)
	return true
}

// Select opens the selection popup for the text covered by span.
func (s *Session) Select(view reader.ViewID, rect reader.Rect, span Span) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !view.Valid() {
		return
	}
	vs := s.state.Views[view]
	vs.SelectionPopup = &reader.SelectionPopup{
		Rect: rect,
		Draft: reader.AnnotationDraft{
			Type:      s.state.TextSelectionAnnotationMode,
			Color:     s.state.Tool.Color,
			PageIndex: span.Page,
			Text:      s.doc.Text(span),
		},
	}
	s.state = s.state.WithView(view, vs)
}

// OpenAnnotationPopup opens the edit popup of an annotation and selects it.
func (s *Session) OpenAnnotationPopup(view reader.ViewID, rect reader.Rect, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.Get(id); !ok {
		return fmt.Errorf("open %q: %w", id, ErrUnknownAnnotation)
	}
	vs := s.state.View(view)
	vs.AnnotationPopup = &reader.AnnotationPopup{Rect: rect, AnnotationID: id}
	s.state = s.state.WithView(view, vs)
	s.state.SelectedAnnotationIDs = []string{id}
	return nil
}

// OpenOverlay previews a link.
func (s *Session) OpenOverlay(view reader.ViewID, rect reader.Rect, link PageLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := link.Kind
	if kind == "" {
		kind = reader.OverlayLink
		if link.URL == "" {
			kind = reader.OverlayReference
		}
	}

	id := link.ID
	if id == "" {
		id = fmt.Sprintf("p%d:%d:%d", link.Span.Page, link.Span.Line, link.Span.Col)
	}

	vs := s.state.View(view)
	vs.OverlayPopup = &reader.OverlayPopup{
		Rect:  rect,
		ID:    id,
		Kind:  kind,
		URL:   link.URL,
		Dest:  link.Dest,
		Chars: link.PreviewRuns(),
	}
	s.state = s.state.WithView(view, vs)
}

// ToggleSidebar opens or closes the sidebar.
func (s *Session) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = !s.state.SidebarOpen
}

// SetSidebarView switches the sidebar pane and opens the sidebar.
func (s *Session) SetSidebarView(v reader.SidebarView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarView = v
	s.state.SidebarOpen = true
}

// CycleSidebarView moves to the next sidebar pane.
func (s *Session) CycleSidebarView() reader.SidebarView {
	order := []reader.SidebarView{reader.SidebarThumbnails, reader.SidebarOutline, reader.SidebarAnnotations}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(order, s.state.SidebarView)
	s.state.SidebarView = order[(i+1)%len(order)]
	s.state.SidebarOpen = true
	return s.state.SidebarView
}

// SetSplit enables or disables the secondary view. A new secondary view
// starts on the primary view's page; disabling it drops its state.
func (s *Session) SetSplit(split reader.SplitType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasEnabled := s.state.SplitEnabled()
	s.state.SplitType = split

	switch {
	case split == reader.SplitNone:
		s.state.Views[reader.ViewSecondary] = reader.ViewState{}
		s.matches[reader.ViewSecondary] = nil
		s.history[reader.ViewSecondary] = nil
		s.state.FocusedView = reader.ViewPrimary
	case !wasEnabled:
		s.goTo(reader.ViewSecondary, s.state.Views[reader.ViewPrimary].Stats.PageIndex, false)
	}
}

// FocusView makes view the one the toolbar reflects.
func (s *Session) FocusView(view reader.ViewID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view == reader.ViewSecondary && !s.state.SplitEnabled() {
		return
	}
	s.state.FocusedView = view
}

// SetTool changes the active annotation tool.
func (s *Session) SetTool(t reader.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tool = t
}

// OpenPageLabelPopup opens the page label editor for an annotation.
func (s *Session) OpenPageLabelPopup(_ reader.ViewID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.index.Get(id)
	if !ok {
		return fmt.Errorf("page label %q: %w", id, ErrUnknownAnnotation)
	}
	if s.state.ReadOnly || a.ReadOnly {
		return fmt.Errorf("page label %q: %w", id, ErrReadOnly)
	}
	s.state = s.state.ClearGlobalPopups()
	s.state.LabelPopup = &reader.LabelPopup{AnnotationIDs: []string{id}, Label: a.PageLabel}
	return nil
}

// SetPageLabel applies the label popup and closes it.
func (s *Session) SetPageLabel(label string) error {
	s.mu.Lock()
	lp := s.state.LabelPopup
	s.mu.Unlock()

	if lp == nil {
		return nil
	}

	patches := make([]reader.AnnotationPatch, 0, len(lp.AnnotationIDs))
	for _, id := range lp.AnnotationIDs {
		patches = append(patches, reader.AnnotationPatch{ID: id, PageLabel: &label})
	}
	if err := s.UpdateAnnotations(s.State().Focused(), patches); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LabelPopup = nil
	return nil
}

// ShowGlobal opens one global popup, closing any other.
func (s *Session) ShowGlobal(gp reader.GlobalPopup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.ClearGlobalPopups()
	switch gp.Kind {
	case reader.GlobalContextMenu:
		s.state.ContextMenu = gp.Context
	case reader.GlobalLabel:
		s.state.LabelPopup = gp.Label
	case reader.GlobalPassword:
		s.state.PasswordPopup = gp.Password
	case reader.GlobalPrint:
		s.state.PrintPopup = gp.Print
	case reader.GlobalAppearance:
		s.state.AppearancePopup = gp.Appearance
	case reader.GlobalTheme:
		s.state.ThemePopup = gp.Theme
	}
}

// CloseGlobalPopups closes every global popup.
func (s *Session) CloseGlobalPopups() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.ClearGlobalPopups()
}

// SetPrintProgress reports print progress; 100 or more closes the popup.
func (s *Session) SetPrintProgress(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent >= 100 {
		s.state.PrintPopup = nil
		return
	}
	s.state = s.state.ClearGlobalPopups()
	s.state.PrintPopup = &reader.PrintPopup{Percent: max(percent, 0)}
}

// Unlock checks the document password. A wrong password keeps the popup
// open with its error flag and sets the error banner.
func (s *Session) Unlock(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.doc.CheckPassword(password) {
		s.state.PasswordPopup = &reader.PasswordPopup{Error: true}
		s.state.ErrorMessage = "Incorrect password"
		return false
	}
	s.state.PasswordPopup = nil
	s.commit()
	return true
}

// SetError shows the error banner until the next successful change.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ErrorMessage = msg
}

// commit finishes a successful state transition.
func (s *Session) commit() {
	s.state.ErrorMessage = ""
}

func (s *Session) newAnnotation(d reader.AnnotationDraft) reader.Annotation {
	typ := d.Type
	if typ == "" {
		typ = s.state.TextSelectionAnnotationMode
	}
	color := d.Color
	if color == "" {
		color = s.state.Tool.Color
	}
	if color == "" && len(s.opts.Palette) > 0 {
		color = s.opts.Palette[0]
	}

	return reader.Annotation{
		ID:           s.opts.NewID(),
		Type:         typ,
		Color:        color,
		Comment:      d.Comment,
		PageIndex:    d.PageIndex,
		PageLabel:    s.doc.PageLabel(d.PageIndex),
		Text:         d.Text,
		AuthorName:   s.opts.Author(),
		DateModified: s.opts.Now(),
	}
}

// insert and replace keep state.Annotations in index order. Both rebuild
// the slice so earlier snapshots are never mutated.
func (s *Session) insert(a reader.Annotation) {
	s.index.Set(a.ID, a)
	s.state.Annotations = s.index.Values()
}

func (s *Session) replace(a reader.Annotation) {
	if _, ok := s.index.Get(a.ID); !ok {
		return
	}
	s.index.Set(a.ID, a)
	s.state.Annotations = s.index.Values()
}

func (s *Session) goTo(view reader.ViewID, page int, remember bool) {
	if !view.Valid() {
		return
	}
	page = max(0, min(page, len(s.doc.Pages)-1))
	cur := s.state.Views[view].Stats.PageIndex
	if remember && page != cur {
		s.history[view] = append(s.history[view], cur)
	}
	vs := s.state.Views[view]
	vs.Stats.PageIndex = page
	s.state = s.state.WithView(view, vs)
	s.refreshStats(view)
}

func (s *Session) refreshStats(view reader.ViewID) {
	vs := s.state.Views[view]
	n := len(s.doc.Pages)
	page := vs.Stats.PageIndex

	vs.Stats = reader.ViewStats{
		PageIndex:                 page,
		PageLabel:                 s.doc.PageLabel(page),
		PagesCount:                n,
		Percentage:                fmt.Sprintf("%d%%", (page+1)*100/max(n, 1)),
		CanNavigateBack:           len(s.history[view]) > 0,
		CanNavigateToPreviousPage: page > 0,
		CanNavigateToNextPage:     page < n-1,
	}
	s.state = s.state.WithView(view, vs)
}
