package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/lectern/internal/core/popup"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/document"
)

// Messages raised by popup handlers that need the update loop: they either
// open UI owned by the composer or start work off the loop.
type (
	createAnnotationMsg struct {
		view  reader.ViewID
		draft reader.AnnotationDraft
	}
	convertRequestMsg struct{ view reader.ViewID }
	openLinkMsg       struct {
		view reader.ViewID
		url  string
	}
	openTagsMsg struct {
		view reader.ViewID
		id   string
	}
	providerErrMsg struct {
		op  string
		err error
	}
)

// outbox collects the commands produced by handler callbacks during one
// update. Handlers run synchronously inside Update, which drains the outbox
// before returning.
type outbox struct {
	mu   sync.Mutex
	cmds []tea.Cmd
}

func (o *outbox) send(msg tea.Msg) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cmds = append(o.cmds, func() tea.Msg { return msg })
}

func (o *outbox) drain() tea.Cmd {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(o.cmds...)
	o.cmds = nil
	return cmd
}

// newHandlers wires popup events to the provider. Pure state changes go
// straight to the provider; everything that needs the composer is turned
// into a message.
func newHandlers(p document.Provider, out *outbox) popup.Handlers {
	fail := func(op string, err error) {
		if err != nil {
			out.send(providerErrMsg{op: op, err: err})
		}
	}

	return popup.Handlers{
		AddAnnotation: func(view reader.ViewID, draft reader.AnnotationDraft) {
			out.send(createAnnotationMsg{view: view, draft: draft})
		},
		UpdateAnnotations: func(view reader.ViewID, patches []reader.AnnotationPatch) {
			fail("update annotations", p.UpdateAnnotations(view, patches))
		},
		AddToNote:                         p.AddToNote,
		ChangeTextSelectionAnnotationMode: p.ChangeTextSelectionAnnotationMode,
		ChangeFindState:                   p.ChangeFindState,
		FindNext:                          p.FindNext,
		FindPrevious:                      p.FindPrevious,
		ConvertSearchResults: func(view reader.ViewID) {
			out.send(convertRequestMsg{view: view})
		},
		CloseOverlayPopup: p.CloseOverlayPopup,
		OpenLink: func(view reader.ViewID, url string) {
			out.send(openLinkMsg{view: view, url: url})
		},
		Navigate: func(view reader.ViewID, dest reader.Destination) {
			fail("navigate", p.Navigate(view, dest))
		},
		OpenTagsPopup: func(view reader.ViewID, id string) {
			out.send(openTagsMsg{view: view, id: id})
		},
		OpenPageLabelPopup: func(view reader.ViewID, id string) {
			fail("page label", p.OpenPageLabelPopup(view, id))
		},
	}
}
