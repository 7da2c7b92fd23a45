package document

import (
	"github.com/hay-kot/lectern/internal/core/reader"
)

// Provider is the document collaborator the reader UI drives. Session is
// the in-memory implementation.
type Provider interface {
	Document() *Document
	State() reader.State
	Replace(st reader.State)
	Matches(view reader.ViewID) []Span
	CurrentMatch(view reader.ViewID) (Span, bool)

	AddAnnotation(view reader.ViewID, draft reader.AnnotationDraft) (reader.Annotation, error)
	UpdateAnnotations(view reader.ViewID, patches []reader.AnnotationPatch) error
	DeleteAnnotations(ids ...string) error
	AddToNote(view reader.ViewID, drafts []reader.AnnotationDraft)
	ChangeTextSelectionAnnotationMode(view reader.ViewID, mode reader.AnnotationType)

	ChangeFindState(view reader.ViewID, fs reader.FindState)
	FindNext(view reader.ViewID)
	FindPrevious(view reader.ViewID)

	ClearSlot(key reader.SlotKey)
	CloseOverlayPopup(view reader.ViewID)
	Select(view reader.ViewID, rect reader.Rect, span Span)
	OpenAnnotationPopup(view reader.ViewID, rect reader.Rect, id string) error
	OpenOverlay(view reader.ViewID, rect reader.Rect, link PageLink)

	Navigate(view reader.ViewID, dest reader.Destination) error
	NextPage(view reader.ViewID) error
	PrevPage(view reader.ViewID) error
	Back(view reader.ViewID) bool

	ToggleSidebar()
	SetSidebarView(v reader.SidebarView)
	CycleSidebarView() reader.SidebarView
	SetSplit(split reader.SplitType)
	FocusView(view reader.ViewID)
	SetTool(t reader.Tool)

	OpenPageLabelPopup(view reader.ViewID, id string) error
	SetPageLabel(label string) error
	ShowGlobal(gp reader.GlobalPopup)
	CloseGlobalPopups()
	SetPrintProgress(percent int)
	Unlock(password string) bool
	SetError(msg string)
}

var _ Provider = (*Session)(nil)
