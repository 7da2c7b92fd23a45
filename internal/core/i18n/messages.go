package i18n

import "golang.org/x/text/language"

// String ids used by the reader UI.
const (
	HighlightText        = "pdfReader.highlightText"
	UnderlineText        = "pdfReader.underlineText"
	AddToNote            = "pdfReader.addToNote"
	ConvertSearchResults = "pdfReader.convertSearchResults"
	Converting           = "pdfReader.converting"
	Find                 = "pdfReader.find"
	FindNext             = "pdfReader.findNext"
	FindPrevious         = "pdfReader.findPrevious"
	FindResultCount      = "pdfReader.findResultCount"
	FindNoResults        = "pdfReader.findNoResults"
	HighlightAll         = "pdfReader.highlightAll"
	MatchCase            = "pdfReader.matchCase"
	WholeWords           = "pdfReader.wholeWords"
	Comment              = "pdfReader.comment"
	AddComment           = "pdfReader.addComment"
	Tags                 = "pdfReader.tags"
	PageLabel            = "pdfReader.pageLabel"
	OpenLink             = "pdfReader.openLink"
	GoToDestination      = "pdfReader.goToDestination"
	Close                = "general.close"
	Annotations          = "pdfReader.showAnnotations"
	Outline              = "pdfReader.showOutline"
	Thumbnails           = "pdfReader.showThumbnails"
	ReadOnly             = "pdfReader.readOnly"
	EnterAuthorName      = "pdfReader.enterAuthorName"
	ChangeAuthorName     = "pdfReader.changeAuthorName"
	PasswordRequired     = "pdfReader.passwordRequired"
	PrintProgress        = "pdfReader.preparingDocumentForPrinting"
	Appearance           = "pdfReader.appearance"
	Theme                = "pdfReader.theme"
	EditPageLabel        = "pdfReader.editPageLabel"
	LinkBlocked          = "pdfReader.linkBlocked"
	Page                 = "pdfReader.page"
)

var bundled = map[language.Tag]map[string]string{
	language.English: {
		HighlightText:        "Highlight Text",
		UnderlineText:        "Underline Text",
		AddToNote:            "Add to Note",
		ConvertSearchResults: "Convert Matches to Annotations",
		Converting:           "Converting…",
		Find:                 "Find",
		FindNext:             "Next",
		FindPrevious:         "Previous",
		FindResultCount:      "%d of %d",
		FindNoResults:        "No results",
		HighlightAll:         "Highlight All",
		MatchCase:            "Match Case",
		WholeWords:           "Whole Words",
		Comment:              "Comment",
		AddComment:           "Add comment…",
		Tags:                 "Tags",
		PageLabel:            "Page %s",
		OpenLink:             "Open Link",
		GoToDestination:      "Go to Page",
		Close:                "Close",
		Annotations:          "Annotations",
		Outline:              "Outline",
		Thumbnails:           "Thumbnails",
		ReadOnly:             "Read-only",
		EnterAuthorName:      "Enter your name for annotations:",
		ChangeAuthorName:     "Change Annotation Name",
		PasswordRequired:     "This document is password protected",
		PrintProgress:        "Preparing document for printing… %d%%",
		Appearance:           "Appearance",
		Theme:                "Theme",
		EditPageLabel:        "Edit Page Number",
		LinkBlocked:          "Link blocked: %s",
		Page:                 "Page %s of %d",
		"general.yellow":     "Yellow",
		"general.red":        "Red",
		"general.green":      "Green",
		"general.blue":       "Blue",
		"general.purple":     "Purple",
		"general.magenta":    "Magenta",
		"general.orange":     "Orange",
		"general.gray":       "Gray",
	},
	language.German: {
		HighlightText:        "Text hervorheben",
		UnderlineText:        "Text unterstreichen",
		AddToNote:            "Zur Notiz hinzufügen",
		ConvertSearchResults: "Treffer in Anmerkungen umwandeln",
		Find:                 "Suchen",
		FindNext:             "Weiter",
		FindPrevious:         "Zurück",
		FindResultCount:      "%d von %d",
		FindNoResults:        "Keine Treffer",
		Comment:              "Kommentar",
		Tags:                 "Tags",
		Close:                "Schließen",
		EnterAuthorName:      "Namen für Anmerkungen eingeben:",
		Page:                 "Seite %s von %d",
	},
}
