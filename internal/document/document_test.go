package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/textrun"
)

func loadSample(t *testing.T) *Document {
	t.Helper()
	f, err := LoadFixture("testdata/sample.yaml")
	require.NoError(t, err)
	return New(f)
}

func TestLoadFixture(t *testing.T) {
	doc := loadSample(t)

	assert.Equal(t, "sample-paper", doc.ID)
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "i", doc.Pages[0].Label)
	assert.Len(t, doc.Annotations, 2)
	assert.False(t, doc.Locked())

	require.Len(t, doc.Pages[0].Links, 1)
	link := doc.Pages[0].Links[0]
	assert.Equal(t, reader.OverlayCitation, link.Kind)
	assert.Equal(t, "[1]", doc.Text(link.Span))
}

func TestLink_PreviewRuns(t *testing.T) {
	doc := loadSample(t)

	frags := textrun.Format(doc.Pages[0].Links[0].PreviewRuns())
	want := []textrun.Fragment{
		{Text: "Ref ", Bold: true},
		{Text: "1. "},
		{Text: "See ", Italic: true},
		{Text: "go", URL: "https://go.dev"},
	}
	if diff := cmp.Diff(want, frags); diff != "" {
		t.Errorf("preview fragments mismatch (-want +got):\n%s", diff)
	}

	plain := doc.Pages[1].Links[0].PreviewRuns()
	assert.Equal(t, "The Go website search page", textrun.PlainText(textrun.Format(plain)))
}

func TestParseFixture_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "no pages", yaml: "id: x", wantErr: "no pages"},
		{
			name:    "duplicate annotation",
			yaml:    "pages: [{text: a}]\nannotations: [{id: a, type: highlight}, {id: a, type: highlight}]",
			wantErr: "duplicate id",
		},
		{
			name:    "bad annotation type",
			yaml:    "pages: [{text: a}]\nannotations: [{id: a, type: scribble}]",
			wantErr: "invalid type",
		},
		{
			name:    "annotation page out of range",
			yaml:    "pages: [{text: a}]\nannotations: [{id: a, type: note, page_index: 4}]",
			wantErr: "out of range",
		},
		{
			name:    "link without target",
			yaml:    "pages: [{text: a, links: [{anchor: a}]}]",
			wantErr: "url or dest",
		},
		{name: "not yaml", yaml: "pages: [", wantErr: "parse document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDocument_Search(t *testing.T) {
	doc := loadSample(t)

	all := doc.Search("claim", SearchOptions{})
	assert.Len(t, all, 5)

	cased := doc.Search("Claim", SearchOptions{CaseSensitive: true})
	require.Len(t, cased, 1)
	assert.Equal(t, Position{Page: 1, Line: 2, Col: 0}, cased[0].Position)

	words := doc.Search("claim", SearchOptions{EntireWord: true})
	assert.Len(t, words, 4, "Claims is not a whole-word match")

	assert.Empty(t, doc.Search("  ", SearchOptions{}))
	assert.Empty(t, doc.Search("absent", SearchOptions{}))
}

func TestDocument_LocateAndLinkAt(t *testing.T) {
	doc := loadSample(t)

	span, ok := doc.Locate(1, "every claim")
	require.True(t, ok)
	assert.Equal(t, "every claim", doc.Text(span))

	_, ok = doc.Locate(9, "x")
	assert.False(t, ok)

	// Anchors match case-sensitively, so "Search" at the start of the page
	// is not the link.
	link, ok := doc.LinkAt(Position{Page: 1, Line: 1, Col: 18})
	require.True(t, ok)
	assert.Equal(t, "go-site", link.ID)

	_, ok = doc.LinkAt(Position{Page: 1, Line: 0, Col: 1})
	assert.False(t, ok)
}

func TestDocument_Text_OutOfRange(t *testing.T) {
	doc := loadSample(t)
	assert.Empty(t, doc.Text(Span{Position: Position{Page: 5}}))
	assert.Empty(t, doc.Text(Span{Position: Position{Page: 0, Line: 99}}))
	assert.Equal(t, "Tools", doc.Text(Span{Position: Position{Page: 0, Line: 0, Col: 25}, Len: 50}))
}

func TestDocument_WordAt(t *testing.T) {
	doc := loadSample(t)

	// "Search lets the reader find every claim at once."
	span, ok := doc.WordAt(Position{Page: 1, Line: 0, Col: 36})
	require.True(t, ok)
	assert.Equal(t, "claim", doc.Text(span))

	span, ok = doc.WordAt(Position{Page: 1, Line: 0, Col: 6})
	require.True(t, ok)
	assert.Equal(t, 1, span.Len, "a space selects itself")

	_, ok = doc.WordAt(Position{Page: 1, Line: 9})
	assert.False(t, ok)

	assert.Equal(t, 48, doc.LineLen(1, 0))
	assert.Zero(t, doc.LineLen(5, 0))
}
