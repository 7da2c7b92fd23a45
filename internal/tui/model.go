package tui

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/convert"
	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/links"
	"github.com/hay-kot/lectern/internal/core/logging"
	"github.com/hay-kot/lectern/internal/core/notify"
	"github.com/hay-kot/lectern/internal/core/popup"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/settings"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/core/textrun"
	"github.com/hay-kot/lectern/internal/document"
	tuinotify "github.com/hay-kot/lectern/internal/tui/notify"
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// Options configures the TUI behavior.
type Options struct {
	Context   context.Context  // Parent for provider calls; background when nil
	Engine    convert.Engine   // Rendering engine used to convert matches (optional)
	Author    *settings.Author // Annotation author name; in-memory when nil
	Opener    *links.Opener    // External link handler (optional)
	Catalog   *i18n.Catalog    // Localized strings; English when nil
	SaveTheme ThemeSaver       // Persists the chosen theme (optional)
	Logger    zerolog.Logger
	Build     BuildInfo
	Warnings  []string // Startup warnings to display as toasts
}

// ThemeSaver stores the theme picked from the theme popup.
type ThemeSaver func(ctx context.Context, name string) error

// Model is the overlay composer: it renders one or two document views of a
// provider's state together with their popups and routes input back to the
// provider.
type Model struct {
	cfg       *config.Config
	provider  document.Provider
	engine    convert.Engine
	machine   *convert.Machine
	author    *settings.Author
	opener    *links.Opener
	catalog   *i18n.Catalog
	keys      *KeybindingResolver
	coord     *popup.Coordinator
	anchor    *popup.Anchor
	runs      textrun.Renderer
	logger    zerolog.Logger
	build     BuildInfo
	saveTheme ThemeSaver
	ctx       context.Context
	cancel    context.CancelFunc

	// Snapshot of the provider state, refreshed after every change.
	state      reader.State
	pages      [2]int
	cursors    [2]viewCursor
	viewports  [2]viewport.Model
	selections [2]*document.Span
	focus      focusTarget

	// Find popup input, one per view.
	findInputs  [2]textinput.Model
	findFocused bool

	spinner     spinner.Model
	convertView reader.ViewID

	sidebar  *Sidebar
	modals   *ModalCoordinator
	out      *outbox
	handlers popup.Handlers

	// Notifications
	notifyBus       *tuinotify.Bus
	toastController *ToastController
	toastView       *ToastView

	themeName       string
	width           int
	height          int
	quitting        bool
	startupWarnings []string
}

// convertDoneMsg is sent when a search-to-annotation conversion finishes.
type convertDoneMsg struct {
	result convert.Result
}

// linkOpenedMsg is sent when the external link handler returns.
type linkOpenedMsg struct {
	url string
	err error
}

// printTickMsg advances the simulated print job.
type printTickMsg struct{}

// New creates a new TUI model over provider.
func New(cfg *config.Config, provider document.Provider, opts Options) Model {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.Must("")
	}
	author := opts.Author
	if author == nil {
		author = settings.NewAuthor(nil)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	var inputs [2]textinput.Model
	for i := range inputs {
		inputs[i] = newFindInput(catalog.T(i18n.Find))
	}

	notifyBus := tuinotify.NewBus(opts.Logger)
	toastCtrl := NewToastController()
	toastView := NewToastView(toastCtrl)

	// Wire bus -> toast controller
	notifyBus.Subscribe(func(n notify.Notification) {
		toastCtrl.Push(n)
	})

	out := &outbox{}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	m := Model{
		cfg:             cfg,
		provider:        provider,
		engine:          opts.Engine,
		machine:         convert.NewMachine(logging.ComponentOf(opts.Logger, "convert")),
		author:          author,
		opener:          opts.Opener,
		catalog:         catalog,
		keys:            NewKeybindingResolver(cfg.Keybindings),
		coord:           popup.NewCoordinator(),
		anchor:          popup.NewAnchor(cfg.Popup.Padding),
		runs:            textrun.NewRenderer(),
		logger:          opts.Logger,
		build:           opts.Build,
		saveTheme:       opts.SaveTheme,
		ctx:             ctx,
		cancel:          cancel,
		findInputs:      inputs,
		viewports:       [2]viewport.Model{viewport.New(), viewport.New()},
		spinner:         s,
		sidebar:         NewSidebar(),
		modals:          NewModalCoordinator(),
		out:             out,
		handlers:        newHandlers(provider, out),
		notifyBus:       notifyBus,
		toastController: toastCtrl,
		toastView:       toastView,
		themeName:       cfg.Theme,
		startupWarnings: opts.Warnings,
	}
	m.refresh()
	return m
}

func newFindInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.SetWidth(24)
	st := textinput.DefaultStyles(true)
	st.Cursor.Color = styles.ColorPrimary
	ti.SetStyles(st)
	return ti
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	for _, w := range m.startupWarnings {
		m.notifyBus.Warnf("%s", w)
	}
	if m.toastController.HasToasts() {
		m.toastController.SetTicking(true)
		return scheduleToastTick()
	}
	return nil
}

// State returns the last state snapshot the model rendered from.
func (m Model) State() reader.State { return m.state }

// SetState replaces the provider state wholesale, as an embedding host
// does when it restores a saved session.
func (m Model) SetState(st reader.State) Model {
	m.provider.Replace(st)
	m.refresh()
	return m
}

// ScrollAnnotationIntoView opens the annotations pane and moves its cursor
// to id. It reports whether the annotation exists.
func (m Model) ScrollAnnotationIntoView(id string) (Model, bool) {
	if _, ok := m.state.Annotation(id); !ok {
		return m, false
	}
	if !m.state.SidebarOpen {
		m.provider.ToggleSidebar()
	}
	m.provider.SetSidebarView(reader.SidebarAnnotations)
	m.refresh()
	return m, m.sidebar.SelectAnnotation(m.state, m.provider.Document(), id)
}

// EditAnnotationText scrolls the annotation into view and opens its
// comment editor.
func (m Model) EditAnnotationText(id string) (Model, tea.Cmd) {
	m, ok := m.ScrollAnnotationIntoView(id)
	if !ok {
		return m, nil
	}
	a, _ := m.state.Annotation(id)
	if m.state.ReadOnly || a.ReadOnly {
		m.notifyBus.Warnf("%s", m.catalog.T(i18n.ReadOnly))
		return m, nil
	}
	m.focus = focusSidebar
	m.modals.ShowComment(id, a.Comment)
	return m, m.modals.Editor.Focus()
}

// Update handles incoming messages and returns an updated model and command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	cmds := []tea.Cmd{cmd, m.out.drain()}

	if m.toastController.HasToasts() && !m.toastController.Ticking() {
		m.toastController.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modals.SetSize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case toastTickMsg:
		m.toastController.Tick(toastTickInterval)
		if m.toastController.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toastController.SetTicking(false)
		return m, nil

	case spinner.TickMsg:
		if !m.machine.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case createAnnotationMsg:
		return m.createAnnotation(msg.view, msg.draft)

	case convertRequestMsg:
		return m.requestConvert(msg.view)

	case convertDoneMsg:
		return m.handleConvertDone(msg.result)

	case openLinkMsg:
		return m.openLink(msg.view, msg.url)

	case linkOpenedMsg:
		if msg.err != nil {
			m.notifyBus.Errorf("open %s: %v", msg.url, msg.err)
		}
		return m, nil

	case openTagsMsg:
		return m.openTags(msg.id)

	case providerErrMsg:
		m.reportErr(msg.op, msg.err)
		m.refresh()
		return m, nil

	case printTickMsg:
		return m.advancePrint()

	case tea.KeyMsg:
		m, cmd := m.handleKey(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

// refresh pulls a new state snapshot from the provider and brings the
// view-local caches in line with it.
func (m *Model) refresh() {
	m.state = m.provider.State()
	m.modals.SyncGlobal(m.state)

	doc := m.provider.Document()
	l := computeLayout(m.state, m.width, m.height)
	for _, v := range reader.Views {
		vs := m.state.View(v)
		if vs.SelectionPopup == nil {
			m.selections[v] = nil
		}
		if page := vs.Stats.PageIndex; page != m.pages[v] {
			m.pages[v] = page
			m.cursors[v] = viewCursor{}
			if cur, ok := m.provider.CurrentMatch(v); ok && cur.Page == page {
				m.cursors[v] = viewCursor{line: cur.Line, col: cur.Col}
			}
		}
		inner := l.views[v].inner()
		m.viewports[v].SetWidth(inner.W)
		m.viewports[v].SetHeight(inner.H - 1)
		m.cursors[v] = m.cursors[v].clamp(doc, m.pages[v], &m.viewports[v])
	}

	if !m.state.SplitEnabled() && m.state.FocusedView == reader.ViewSecondary {
		m.findFocused = false
	}
	if !m.state.SidebarOpen && m.focus == focusSidebar {
		m.focus = focusDocument
	}
	if !m.state.View(m.state.Focused()).FindState.PopupOpen {
		m.findFocused = false
	}
	m.syncFindFocus()
}

// syncFindFocus focuses only the find input of the focused view, and only
// while typing is routed to it.
func (m *Model) syncFindFocus() {
	for _, v := range reader.Views {
		if m.findFocused && v == m.state.Focused() {
			m.findInputs[v].Focus()
		} else {
			m.findInputs[v].Blur()
		}
	}
}

// reportErr turns a provider error into a toast. Read-only rejections are
// warnings; everything else is an error.
func (m *Model) reportErr(op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, document.ErrReadOnly) {
		m.notifyBus.Warnf("%s: %s", op, m.catalog.T(i18n.ReadOnly))
		return
	}
	m.notifyBus.Errorf("%s: %v", op, err)
}

// quit cancels in-flight work and stops the program.
func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}
