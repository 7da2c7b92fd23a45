package textrun

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
		want []Fragment
	}{
		{
			name: "empty input",
			runs: nil,
			want: nil,
		},
		{
			name: "all ignorable",
			runs: []Run{{Char: "a", Ignorable: true}, {Char: "b", Ignorable: true, Bold: true}},
			want: nil,
		},
		{
			name: "single run",
			runs: []Run{{Char: "x", Italic: true}},
			want: []Fragment{{Text: "x", Italic: true}},
		},
		{
			name: "single run with space after",
			runs: []Run{{Char: "x", SpaceAfter: true}},
			want: []Fragment{{Text: "x "}},
		},
		{
			name: "bold then plain",
			runs: []Run{
				{Char: "H", Bold: true},
				{Char: "i", Bold: true, SpaceAfter: true},
				{Char: "t"},
				{Char: "h"},
			},
			want: []Fragment{{Text: "Hi ", Bold: true}, {Text: "th"}},
		},
		{
			name: "leading ignorable starts fragment at first visible run",
			runs: []Run{
				{Char: "-", Ignorable: true, Bold: true},
				{Char: "a"},
				{Char: "b"},
			},
			want: []Fragment{{Text: "ab"}},
		},
		{
			name: "ignorable does not close fragment",
			runs: []Run{
				{Char: "a", Bold: true},
				{Char: "-", Ignorable: true},
				{Char: "b", Bold: true},
			},
			want: []Fragment{{Text: "ab", Bold: true}},
		},
		{
			name: "line break adds space except on last run",
			runs: []Run{
				{Char: "a", LineBreakAfter: true},
				{Char: "b", LineBreakAfter: true},
			},
			want: []Fragment{{Text: "a b"}},
		},
		{
			name: "line break on last visible run followed by ignorable",
			runs: []Run{
				{Char: "a", LineBreakAfter: true},
				{Char: "-", Ignorable: true},
			},
			want: []Fragment{{Text: "a "}},
		},
		{
			name: "url change splits fragment",
			runs: []Run{
				{Char: "a", URL: "https://a.example"},
				{Char: "b", URL: "https://a.example"},
				{Char: "c", URL: "https://b.example"},
				{Char: "d"},
			},
			want: []Fragment{
				{Text: "ab", URL: "https://a.example"},
				{Text: "c", URL: "https://b.example"},
				{Text: "d"},
			},
		},
		{
			name: "returning to a previous style opens a new fragment",
			runs: []Run{
				{Char: "a", Italic: true},
				{Char: "b"},
				{Char: "c", Italic: true},
			},
			want: []Fragment{{Text: "a", Italic: true}, {Text: "b"}, {Text: "c", Italic: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.runs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// randomRuns builds a run sequence from a small alphabet of styles so
// neighbouring runs often share a style and often do not.
func randomRuns(rng *rand.Rand) []Run {
	urls := []string{"", "", "https://example.org", "https://go.dev"}
	chars := []string{"a", "b", "é", "読", "🙂", " "}

	runs := make([]Run, rng.IntN(24))
	for i := range runs {
		runs[i] = Run{
			Char:           chars[rng.IntN(len(chars))],
			Bold:           rng.IntN(3) == 0,
			Italic:         rng.IntN(3) == 0,
			URL:            urls[rng.IntN(len(urls))],
			SpaceAfter:     rng.IntN(4) == 0,
			LineBreakAfter: rng.IntN(5) == 0,
			Ignorable:      rng.IntN(5) == 0,
		}
	}
	return runs
}

func TestFormat_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 1977))

	for n := range 500 {
		runs := randomRuns(rng)
		frags := Format(runs)

		visible := 0
		var want strings.Builder
		for i, r := range runs {
			if r.Ignorable {
				continue
			}
			visible++
			want.WriteString(r.Char)
			if r.SpaceAfter || (r.LineBreakAfter && i != len(runs)-1) {
				want.WriteByte(' ')
			}
		}

		require.LessOrEqual(t, len(frags), visible, "case %d: more fragments than visible runs: %+v", n, runs)
		for i := 1; i < len(frags); i++ {
			prev, cur := frags[i-1], frags[i]
			same := prev.Bold == cur.Bold && prev.Italic == cur.Italic && prev.URL == cur.URL
			require.False(t, same, "case %d: fragments %d and %d share a style: %+v", n, i-1, i, runs)
		}
		for i, f := range frags {
			require.NotEmpty(t, f.Text, "case %d: fragment %d is empty", n, i)
		}
		require.Equal(t, want.String(), PlainText(frags), "case %d: text is lost or reordered: %+v", n, runs)
	}
}

func TestFormat_SpaceAfterAddsOneSpace(t *testing.T) {
	base := []Run{{Char: "a"}, {Char: "b"}, {Char: "c"}}
	withSpace := []Run{{Char: "a"}, {Char: "b", SpaceAfter: true}, {Char: "c"}}

	before := Format(base)
	after := Format(withSpace)

	assert.Len(t, after, len(before))
	assert.Equal(t, len(before[0].Text)+1, len(after[0].Text))
	assert.Equal(t, "ab c", after[0].Text)
}

func TestFragment_Wrappers(t *testing.T) {
	f := Fragment{Text: "x", Bold: true, Italic: true, URL: "https://example.org"}
	assert.Equal(t, []Wrapper{WrapLink, WrapEmphasis, WrapStrong}, f.Wrappers())

	assert.Empty(t, Fragment{Text: "plain"}.Wrappers())
	assert.Equal(t, []Wrapper{WrapStrong}, Fragment{Text: "b", Bold: true}.Wrappers())
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()
	frags := Format([]Run{
		{Char: "a", Bold: true, SpaceAfter: true},
		{Char: "l", URL: "https://example.org"},
		{Char: "k", URL: "https://example.org"},
	})

	out := r.Render(frags)
	assert.Equal(t, "a lk", ansi.Strip(out))
	assert.Contains(t, out, "https://example.org")

	r.Hyperlinks = false
	assert.NotContains(t, r.Render(frags), "https://example.org")
}

func TestRenderer_LinkIsInnermost(t *testing.T) {
	r := NewRenderer()
	out := r.Fragment(Fragment{Text: "xy", Bold: true, URL: "https://go.dev"})

	link := strings.Index(out, ansi.SetHyperlink("https://go.dev"))
	text := strings.Index(out, "xy")
	assert.GreaterOrEqual(t, link, 0)
	assert.Less(t, link, text)
	// bold opens before the hyperlink does
	assert.True(t, strings.HasPrefix(out, "\x1b["), "expected SGR before hyperlink, got %q", out)
}

func TestLinks(t *testing.T) {
	frags := []Fragment{
		{Text: "a", URL: "https://a"},
		{Text: "b"},
		{Text: "c", URL: "https://b"},
		{Text: "d", URL: "https://a", Bold: true},
	}
	assert.Equal(t, []string{"https://a", "https://b"}, Links(frags))
}

func TestFromString(t *testing.T) {
	frags := Format(FromString("see the docs"))
	assert.Equal(t, []Fragment{{Text: "see the docs"}}, frags)
	assert.Equal(t, "see the docs", PlainText(frags))
}
