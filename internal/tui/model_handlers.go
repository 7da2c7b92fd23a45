package tui

import (
	"errors"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/convert"
	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/logging"
	"github.com/hay-kot/lectern/internal/core/popup"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/document"
)

const (
	actionPrint   = "print"
	printStep     = 20
	printInterval = 120 * time.Millisecond
)

// handleKey routes a key press. The first layer that claims the key wins:
// composer modals, the global popup, the find input, the focused view's
// popup, the sidebar, configured actions, and finally caret movement.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := msg.String()
	if k == keyCtrlC {
		return m.quit()
	}

	if m.modals.Open() {
		return m.handleModalKey(msg)
	}
	if active := m.state.ActiveGlobalPopups(); len(active) > 0 {
		return m.handleGlobalKey(msg, active[0])
	}
	if m.findFocused {
		return m.handleFindKey(msg)
	}
	if m.focus == focusDocument {
		if handled, cmd := m.handlePopupKey(k); handled {
			return m, cmd
		}
	}
	if m.focus == focusSidebar {
		if handled, cmd := m.handleSidebarKey(k); handled {
			return m, cmd
		}
	}
	if action, ok := m.keys.Resolve(k); ok {
		return m.dispatch(action)
	}
	if m.focus == focusDocument {
		m.moveCaret(k)
	}
	return m, nil
}

// boundView returns the resolved popups and tagged handlers of view.
func (m Model) boundView(view reader.ViewID) (popup.BoundView, bool) {
	for _, bv := range m.coord.Wire(m.state, m.handlers) {
		if bv.Handlers.View == view {
			return bv, true
		}
	}
	return popup.BoundView{}, false
}

// handlePopupKey lets the winning popup of the focused view claim a key.
func (m *Model) handlePopupKey(k string) (bool, tea.Cmd) {
	view := m.state.Focused()
	bv, ok := m.boundView(view)
	if !ok || bv.Resolution.Popup == nil {
		return false, nil
	}
	p, vh := bv.Resolution.Popup, bv.Handlers

	if k == keyEsc {
		if p.Overlay != nil {
			vh.CloseOverlayPopup()
		} else {
			m.provider.ClearSlot(p.Key)
		}
		m.anchor.Forget(p.Key)
		return true, nil
	}

	switch {
	case p.Selection != nil:
		return m.selectionKey(view, *p.Selection, vh, k)
	case p.Annotation != nil:
		return m.annotationKey(*p.Annotation, vh, k)
	case p.Overlay != nil:
		return m.overlayKey(*p.Overlay, vh, k)
	}
	return false, nil
}

// paletteIndex maps the digit keys 1-9 to palette entries.
func (m Model) paletteIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	i := int(k[0] - '1')
	return i, i < len(m.cfg.AnnotationColors)
}

func (m *Model) selectionKey(view reader.ViewID, sp reader.SelectionPopup, vh popup.ViewHandlers, k string) (bool, tea.Cmd) {
	draft := sp.Draft
	if draft.Type == "" {
		draft.Type = m.state.TextSelectionAnnotationMode
	}

	if i, ok := m.paletteIndex(k); ok {
		draft.Color = m.cfg.AnnotationColors[i].Color
		vh.AddAnnotation(draft)
		return true, nil
	}

	switch k {
	case keyEnter:
		if draft.Color == "" {
			draft.Color = m.state.Tool.Color
		}
		vh.AddAnnotation(draft)
		return true, nil
	case "a":
		if !m.state.EnableAddToNote {
			return false, nil
		}
		vh.AddToNote([]reader.AnnotationDraft{draft})
		return true, nil
	case "shift+left", "shift+right":
		sel := m.selections[view]
		if sel == nil {
			return true, nil
		}
		grown := *sel
		if k == "shift+right" {
			grown.Len = min(grown.Len+1, m.provider.Document().LineLen(grown.Page, grown.Line)-grown.Col)
		} else {
			grown.Len = max(grown.Len-1, 1)
		}
		m.selectSpan(view, grown)
		return true, nil
	}
	return false, nil
}

func (m Model) annotationKey(a reader.Annotation, vh popup.ViewHandlers, k string) (bool, tea.Cmd) {
	editable := !m.state.ReadOnly && !a.ReadOnly

	if i, ok := m.paletteIndex(k); ok {
		if !editable {
			return true, nil
		}
		color := m.cfg.AnnotationColors[i].Color
		vh.UpdateAnnotations([]reader.AnnotationPatch{{ID: a.ID, Color: &color}})
		return true, nil
	}

	switch k {
	case "c":
		if editable {
			m.modals.ShowComment(a.ID, a.Comment)
			return true, m.modals.Editor.Focus()
		}
	case "t":
		if editable {
			vh.OpenTagsPopup(a.ID)
		}
	case "l":
		vh.OpenPageLabelPopup(a.ID)
	case "x":
		if editable {
			m.modals.ShowConfirmDelete(a.ID, a.Text)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (m Model) overlayKey(op reader.OverlayPopup, vh popup.ViewHandlers, k string) (bool, tea.Cmd) {
	switch k {
	case keyEnter:
		if op.URL == "" {
			return false, nil
		}
		vh.OpenLink(op.URL)
		return true, nil
	case "g":
		if op.Dest == nil {
			return false, nil
		}
		vh.Navigate(*op.Dest)
		vh.CloseOverlayPopup()
		return true, nil
	}
	return false, nil
}

// handleFindKey edits the find query of the focused view. Every edit is
// pushed to the provider so results update while typing.
func (m Model) handleFindKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	view := m.state.Focused()
	bv, ok := m.boundView(view)
	if !ok {
		m.findFocused = false
		return m, nil
	}
	vh := bv.Handlers
	fs := m.state.View(view).FindState

	switch msg.String() {
	case keyEsc:
		m.findFocused = false
		m.findInputs[view].SetValue("")
		vh.ChangeFindState(reader.FindState{
			HighlightAll:  fs.HighlightAll,
			CaseSensitive: fs.CaseSensitive,
			EntireWord:    fs.EntireWord,
		})
		return m, nil
	case "tab":
		m.findFocused = false
		return m, nil
	case keyEnter:
		vh.FindNext()
		m.caretToMatch(view)
		return m, nil
	case "shift+enter":
		vh.FindPrevious()
		m.caretToMatch(view)
		return m, nil
	case "alt+h":
		fs.HighlightAll = !fs.HighlightAll
		vh.ChangeFindState(fs)
		return m, nil
	case "alt+c":
		fs.CaseSensitive = !fs.CaseSensitive
		vh.ChangeFindState(fs)
		return m, nil
	case "alt+w":
		fs.EntireWord = !fs.EntireWord
		vh.ChangeFindState(fs)
		return m, nil
	case "alt+enter":
		vh.ConvertSearchResults()
		return m, nil
	}

	var cmd tea.Cmd
	m.findInputs[view], cmd = m.findInputs[view].Update(msg)
	if q := m.findInputs[view].Value(); q != fs.Query {
		fs.Query = q
		vh.ChangeFindState(fs)
		m.caretToMatch(view)
	}
	return m, cmd
}

// caretToMatch moves the caret of view onto its current match.
func (m *Model) caretToMatch(view reader.ViewID) {
	cur, ok := m.provider.CurrentMatch(view)
	if !ok || cur.Page != m.provider.State().View(view).Stats.PageIndex {
		return
	}
	m.pages[view] = cur.Page
	m.cursors[view].line, m.cursors[view].col = cur.Line, cur.Col
}

func (m *Model) handleSidebarKey(k string) (bool, tea.Cmd) {
	doc := m.provider.Document()
	switch k {
	case "up", "k":
		m.sidebar.Move(m.state, doc, -1)
	case "down", "j":
		m.sidebar.Move(m.state, doc, 1)
	case keyEnter:
		it, ok := m.sidebar.Selected(m.state, doc)
		if !ok {
			return true, nil
		}
		view := m.state.Focused()
		m.reportErr("navigate", m.provider.Navigate(view, reader.Destination{PageIndex: it.page}))
		if it.annotationID != "" {
			m.refresh()
			m.openAnnotationAt(view, it.annotationID)
		}
		m.focus = focusDocument
	case "e":
		it, ok := m.sidebar.Selected(m.state, doc)
		if !ok || it.annotationID == "" {
			return false, nil
		}
		a, _ := m.state.Annotation(it.annotationID)
		if m.state.ReadOnly || a.ReadOnly {
			m.notifyBus.Warnf("%s", m.catalog.T(i18n.ReadOnly))
			return true, nil
		}
		m.modals.ShowComment(a.ID, a.Comment)
		return true, m.modals.Editor.Focus()
	default:
		return false, nil
	}
	return true, nil
}

// dispatch runs a configured action.
func (m Model) dispatch(action string) (Model, tea.Cmd) {
	view := m.state.Focused()
	fs := m.state.View(view).FindState

	switch action {
	case config.ActionQuit:
		return m.quit()

	case config.ActionFind:
		fs.PopupOpen = true
		m.provider.ChangeFindState(view, fs)
		m.findInputs[view].SetValue(fs.Query)
		m.findInputs[view].CursorEnd()
		m.findFocused = true
		m.focus = focusDocument

	case config.ActionFindNext, config.ActionFindPrevious:
		if !fs.Active {
			return m, nil
		}
		if action == config.ActionFindNext {
			m.provider.FindNext(view)
		} else {
			m.provider.FindPrevious(view)
		}
		m.caretToMatch(view)

	case config.ActionToggleSidebar:
		m.provider.ToggleSidebar()
		if m.focus == focusSidebar {
			m.focus = focusDocument
		}

	case config.ActionSidebarView:
		if !m.state.SidebarOpen {
			m.provider.ToggleSidebar()
		}
		m.provider.CycleSidebarView()

	case config.ActionToggleSplit:
		split := reader.SplitVertical
		if m.state.SplitEnabled() {
			split = reader.SplitNone
		}
		m.provider.SetSplit(split)

	case config.ActionFocusOther:
		m.cycleFocus()

	case config.ActionConvert:
		return m.requestConvert(view)

	case config.ActionChangeAuthor:
		name, err := m.author.Name(m.ctx)
		if err != nil {
			m.logger.Warn().Err(err).Msg("load author name")
		}
		m.modals.ShowAuthor(name, nil)
		return m, m.modals.Input.Focus()

	case config.ActionToggleMode:
		mode := reader.AnnotationUnderline
		if m.state.TextSelectionAnnotationMode == reader.AnnotationUnderline {
			mode = reader.AnnotationHighlight
		}
		m.provider.ChangeTextSelectionAnnotationMode(view, mode)

	case config.ActionNextPage:
		if err := m.provider.NextPage(view); err != nil {
			m.logger.Debug().Err(err).Msg("next page")
		}

	case config.ActionPrevPage:
		if err := m.provider.PrevPage(view); err != nil {
			m.logger.Debug().Err(err).Msg("previous page")
		}

	case config.ActionSelect:
		m.selectAtCaret(view)

	case config.ActionOpenLink:
		doc := m.provider.Document()
		link, ok := doc.LinkAt(m.cursors[view].pos(m.pages[view]))
		if !ok {
			return m, nil
		}
		m.provider.OpenOverlay(view, m.spanRect(view, link.Span), link)

	case config.ActionClose:
		switch {
		case fs.PopupOpen:
			fs.PopupOpen = false
			m.provider.ChangeFindState(view, fs)
		case m.focus == focusSidebar:
			m.focus = focusDocument
		}

	case config.ActionBack:
		m.provider.Back(view)

	case config.ActionContextMenu:
		m.provider.ShowGlobal(reader.GlobalPopup{
			Kind:    reader.GlobalContextMenu,
			Context: m.contextMenu(view),
		})

	case config.ActionAppearance:
		m.provider.ShowGlobal(reader.GlobalPopup{
			Kind:       reader.GlobalAppearance,
			Appearance: &reader.AppearancePopup{ScrollMode: "vertical", SpreadMode: "none"},
		})

	case config.ActionTheme:
		bg, fg := styles.ThemeColors(m.themeName)
		m.provider.ShowGlobal(reader.GlobalPopup{
			Kind:  reader.GlobalTheme,
			Theme: &reader.ThemePopup{Name: m.themeName, Background: bg, Foreground: fg},
		})

	case config.ActionHelp:
		m.modals.ShowHelp(m.keys.HelpSections())

	case actionPrint:
		m.provider.SetPrintProgress(0)
		return m, tea.Tick(printInterval, func(time.Time) tea.Msg { return printTickMsg{} })

	default:
		m.logger.Debug().Str("action", action).Msg("unhandled action")
	}
	return m, nil
}

// cycleFocus moves focus primary -> secondary -> sidebar -> primary,
// skipping panes that are not shown.
func (m *Model) cycleFocus() {
	m.findFocused = false
	switch {
	case m.focus == focusSidebar:
		m.focus = focusDocument
		m.provider.FocusView(reader.ViewPrimary)
	case m.state.Focused() == reader.ViewPrimary && m.state.SplitEnabled():
		m.provider.FocusView(reader.ViewSecondary)
	case m.state.SidebarOpen:
		m.focus = focusSidebar
	default:
		m.provider.FocusView(reader.ViewPrimary)
	}
}

func (m Model) contextMenu(view reader.ViewID) *reader.ContextMenu {
	stats := m.state.View(view).Stats
	x, y := m.caretScreen(view)
	return &reader.ContextMenu{
		X: x,
		Y: y + 1,
		Items: []reader.ContextMenuItem{
			{Label: m.catalog.T(i18n.Find), Action: config.ActionFind},
			{Label: "Back", Action: config.ActionBack, Disabled: !stats.CanNavigateBack},
			{Label: "Toggle sidebar", Action: config.ActionToggleSidebar},
			{Label: "Split view", Action: config.ActionToggleSplit},
			{Label: m.catalog.T(i18n.Appearance), Action: config.ActionAppearance},
			{Label: m.catalog.T(i18n.Theme), Action: config.ActionTheme},
			{Label: "Print", Action: actionPrint},
			{Label: m.catalog.T(i18n.ChangeAuthorName), Action: config.ActionChangeAuthor, Disabled: m.state.ReadOnly},
		},
	}
}

// caretScreen returns the screen cell of the caret of view.
func (m Model) caretScreen(view reader.ViewID) (int, int) {
	inner := computeLayout(m.state, m.width, m.height).views[view].inner()
	c := m.cursors[view]
	return inner.X + cellCol(m.provider.Document(), m.pages[view], c.line, c.col), inner.Y + c.textRow(c.line)
}

// spanRect converts a span to a rect in the view's inner coordinates.
func (m Model) spanRect(view reader.ViewID, s document.Span) reader.Rect {
	doc := m.provider.Document()
	x := cellCol(doc, s.Page, s.Line, s.Col)
	return reader.Rect{X: x, Y: m.cursors[view].textRow(s.Line), Width: cellCol(doc, s.Page, s.Line, s.Col+s.Len) - x, Height: 1}
}

// selectAtCaret opens whatever sits under the caret: a link overlay, the
// popup of an annotation, or a word selection.
func (m *Model) selectAtCaret(view reader.ViewID) {
	doc := m.provider.Document()
	pos := m.cursors[view].pos(m.pages[view])

	if link, ok := doc.LinkAt(pos); ok {
		m.provider.OpenOverlay(view, m.spanRect(view, link.Span), link)
		return
	}
	for _, a := range m.state.Annotations {
		if a.PageIndex != pos.Page {
			continue
		}
		if span, ok := doc.Locate(a.PageIndex, a.Text); ok && span.Contains(pos) {
			m.reportErr("open annotation", m.provider.OpenAnnotationPopup(view, m.spanRect(view, span), a.ID))
			return
		}
	}
	if span, ok := doc.WordAt(pos); ok {
		m.selectSpan(view, span)
	}
}

func (m *Model) selectSpan(view reader.ViewID, span document.Span) {
	m.provider.Select(view, m.spanRect(view, span), span)
	m.selections[view] = &span
}

// openAnnotationAt opens the popup of annotation id in view, anchored to
// its text.
func (m *Model) openAnnotationAt(view reader.ViewID, id string) {
	a, ok := m.state.Annotation(id)
	if !ok {
		return
	}
	rect := reader.Rect{Width: 1, Height: 1}
	if span, ok := m.provider.Document().Locate(a.PageIndex, a.Text); ok {
		m.cursors[view].line, m.cursors[view].col = span.Line, span.Col
		rect = m.spanRect(view, span)
	}
	m.reportErr("open annotation", m.provider.OpenAnnotationPopup(view, rect, id))
}

func (m *Model) moveCaret(k string) {
	view := m.state.Focused()
	c := &m.cursors[view]
	switch k {
	case "up":
		c.line--
	case "down":
		c.line++
	case "left":
		c.col--
	case "right":
		c.col++
	case "home":
		c.col = 0
	case "end":
		c.col = m.provider.Document().LineLen(m.pages[view], c.line)
	case "pgup":
		c.line -= 10
	case "pgdown":
		c.line += 10
	}
}

// createAnnotation adds a draft, asking for the author name first when
// none is known.
func (m Model) createAnnotation(view reader.ViewID, draft reader.AnnotationDraft) (Model, tea.Cmd) {
	if m.needsAuthor() {
		m.modals.ShowAuthor("", &pendingCreate{view: view, draft: &draft})
		return m, m.modals.Input.Focus()
	}
	return m.addAnnotation(view, draft)
}

func (m Model) addAnnotation(view reader.ViewID, draft reader.AnnotationDraft) (Model, tea.Cmd) {
	a, err := m.provider.AddAnnotation(view, draft)
	if err != nil {
		m.reportErr("add annotation", err)
		return m, nil
	}
	m.logger.Debug().Str("annotation", a.ID).Msg("annotation created")
	m.selections[view] = nil
	return m, nil
}

func (m Model) needsAuthor() bool {
	name, err := m.author.Name(m.ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("load author name")
	}
	return name == ""
}

// requestConvert starts turning the matches of view into annotations.
func (m Model) requestConvert(view reader.ViewID) (Model, tea.Cmd) {
	if !m.state.View(view).FindState.HasResults() {
		m.notifyBus.Infof("%s", m.catalog.T(i18n.FindNoResults))
		return m, nil
	}
	if m.needsAuthor() {
		m.modals.ShowAuthor("", &pendingCreate{view: view, convert: true})
		return m, m.modals.Input.Focus()
	}
	return m.startConvert(view)
}

func (m Model) startConvert(view reader.ViewID) (Model, tea.Cmd) {
	if err := m.machine.Begin(); err != nil {
		if errors.Is(err, convert.ErrInFlight) {
			m.notifyBus.Warnf("%s", m.catalog.T(i18n.Converting))
			return m, nil
		}
		m.reportErr("convert", err)
		return m, nil
	}

	req := convert.NewRequest(view, m.state.TextSelectionAnnotationMode, m.state.Tool, m.cfg.Palette())
	m.convertView = view

	ctx, machine, engine := logging.WithView(m.ctx, view.String()), m.machine, m.engine
	run := func() tea.Msg {
		return convertDoneMsg{result: machine.Run(ctx, engine, req)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) handleConvertDone(res convert.Result) (Model, tea.Cmd) {
	switch res.Status { //nolint:exhaustive // only terminal states arrive here
	case convert.StatusDone:
		m.notifyBus.Infof("%d annotations created", res.Created)
	case convert.StatusFailed:
		if !errors.Is(res.Err, convert.ErrNoEngine) {
			m.reportErr("convert", res.Err)
		}
	}
	m.refresh()
	return m, nil
}

// runPending resumes work that waited on the author prompt.
func (m Model) runPending(p *pendingCreate) (Model, tea.Cmd) {
	if p == nil {
		return m, nil
	}
	if p.convert {
		return m.startConvert(p.view)
	}
	if p.draft != nil {
		return m.addAnnotation(p.view, *p.draft)
	}
	return m, nil
}

func (m Model) openLink(view reader.ViewID, url string) (Model, tea.Cmd) {
	m.provider.CloseOverlayPopup(view)
	if m.opener == nil {
		m.logger.Debug().Str("url", url).Msg("no link opener configured")
		return m, nil
	}
	if !m.opener.Allowed(url) {
		m.notifyBus.Warnf("%s", m.catalog.Tf(i18n.LinkBlocked, url))
		return m, nil
	}

	ctx, opener := m.ctx, m.opener
	return m, func() tea.Msg {
		return linkOpenedMsg{url: url, err: opener.Open(ctx, url)}
	}
}

func (m Model) openTags(id string) (Model, tea.Cmd) {
	a, ok := m.state.Annotation(id)
	if !ok {
		return m, nil
	}
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	m.modals.ShowTags(id, strings.Join(names, ", "))
	return m, m.modals.Input.Focus()
}

// parseTags splits a comma separated list, keeping the colors of tags that
// already exist. The result is never nil so an empty list clears the tags.
func parseTags(input string, existing []reader.Tag) []reader.Tag {
	tags := []reader.Tag{}
	for _, part := range strings.Split(input, ",") {
		name := strings.TrimSpace(part)
		if name == "" || slices.ContainsFunc(tags, func(t reader.Tag) bool { return t.Name == name }) {
			continue
		}
		tag := reader.Tag{Name: name}
		if i := slices.IndexFunc(existing, func(t reader.Tag) bool { return t.Name == name }); i >= 0 {
			tag.Color = existing[i].Color
		}
		tags = append(tags, tag)
	}
	return tags
}

func (m Model) advancePrint() (Model, tea.Cmd) {
	if m.state.PrintPopup == nil {
		return m, nil
	}
	next := m.state.PrintPopup.Percent + printStep
	m.provider.SetPrintProgress(next)
	m.refresh()
	if next >= 100 {
		m.notifyBus.Infof("Document ready for printing")
		return m, nil
	}
	return m, tea.Tick(printInterval, func(time.Time) tea.Msg { return printTickMsg{} })
}

// handleModalKey feeds a key to the open composer modal.
func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := msg.String()
	mc := m.modals

	switch mc.Kind {
	case modalAuthor:
		switch k {
		case keyEnter:
			pending := mc.Pending
			if name := strings.TrimSpace(mc.Input.Value()); name != "" {
				if err := m.author.Set(m.ctx, name); err != nil {
					m.notifyBus.Errorf("save author: %v", err)
				}
			}
			mc.Dismiss()
			return m.runPending(pending)
		case keyEsc:
			pending := mc.Pending
			mc.Dismiss()
			return m.runPending(pending)
		}
		var cmd tea.Cmd
		mc.Input, cmd = mc.Input.Update(msg)
		return m, cmd

	case modalComment:
		switch k {
		case "ctrl+s":
			comment := strings.TrimSpace(mc.Editor.Value())
			m.reportErr("comment", m.provider.UpdateAnnotations(m.state.Focused(), []reader.AnnotationPatch{{ID: mc.Target, Comment: &comment}}))
			mc.Dismiss()
			return m, nil
		case keyEsc:
			mc.Dismiss()
			return m, nil
		}
		var cmd tea.Cmd
		mc.Editor, cmd = mc.Editor.Update(msg)
		return m, cmd

	case modalTags:
		switch k {
		case keyEnter:
			a, _ := m.state.Annotation(mc.Target)
			tags := parseTags(mc.Input.Value(), a.Tags)
			m.reportErr("tags", m.provider.UpdateAnnotations(m.state.Focused(), []reader.AnnotationPatch{{ID: mc.Target, Tags: tags}}))
			mc.Dismiss()
			return m, nil
		case keyEsc:
			mc.Dismiss()
			return m, nil
		}
		var cmd tea.Cmd
		mc.Input, cmd = mc.Input.Update(msg)
		return m, cmd

	case modalConfirmDelete:
		var cmd tea.Cmd
		mc.Confirm, cmd = mc.Confirm.Update(msg)
		if mc.Confirm.Done() {
			if mc.Confirm.Confirmed() {
				m.reportErr("delete annotation", m.provider.DeleteAnnotations(mc.Target))
			}
			mc.Dismiss()
		}
		return m, cmd

	case modalHelp:
		switch k {
		case keyEsc, "?", "q", keyEnter:
			mc.Dismiss()
		}
		return m, nil
	}
	return m, nil
}

// handleGlobalKey feeds a key to the global popup being shown.
func (m Model) handleGlobalKey(msg tea.KeyMsg, gp reader.GlobalPopup) (Model, tea.Cmd) {
	k := msg.String()
	mc := m.modals

	if n := globalOptions(gp); n > 0 {
		switch k {
		case "up", "k":
			mc.GlobalCursor = max(mc.GlobalCursor-1, 0)
			return m, nil
		case "down", "j":
			mc.GlobalCursor = min(mc.GlobalCursor+1, n-1)
			return m, nil
		case keyEsc:
			m.provider.CloseGlobalPopups()
			return m, nil
		}
	}

	switch gp.Kind {
	case reader.GlobalContextMenu:
		if k != keyEnter || mc.GlobalCursor >= len(gp.Context.Items) {
			return m, nil
		}
		item := gp.Context.Items[mc.GlobalCursor]
		if item.Disabled {
			return m, nil
		}
		m.provider.CloseGlobalPopups()
		m.refresh()
		return m.dispatch(item.Action)

	case reader.GlobalAppearance:
		if k == keyEnter {
			m.provider.SetSplit(splitOrder[mc.GlobalCursor])
			m.provider.CloseGlobalPopups()
		}
		return m, nil

	case reader.GlobalTheme:
		if k == keyEnter {
			name := styles.ThemeNames()[mc.GlobalCursor]
			styles.UseTheme(name)
			m.themeName = name
			m.provider.CloseGlobalPopups()
			if m.saveTheme != nil {
				m.reportErr("theme", m.saveTheme(m.ctx, name))
			}
		}
		return m, nil

	case reader.GlobalLabel:
		switch k {
		case keyEnter:
			m.reportErr("page label", m.provider.SetPageLabel(strings.TrimSpace(mc.GlobalInput.Value())))
			return m, nil
		case keyEsc:
			m.provider.CloseGlobalPopups()
			return m, nil
		}
		var cmd tea.Cmd
		mc.GlobalInput, cmd = mc.GlobalInput.Update(msg)
		return m, cmd

	case reader.GlobalPassword:
		switch k {
		case keyEnter:
			if !m.provider.Unlock(mc.GlobalInput.Value()) {
				mc.GlobalInput.SetValue("")
			}
			return m, nil
		case keyEsc:
			return m.quit()
		}
		var cmd tea.Cmd
		mc.GlobalInput, cmd = mc.GlobalInput.Update(msg)
		return m, cmd

	case reader.GlobalPrint:
		if k == keyEsc {
			m.provider.CloseGlobalPopups()
		}
		return m, nil
	}
	return m, nil
}
