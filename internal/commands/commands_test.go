package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/settings"
)

func newTestFlags(t *testing.T) *Flags {
	t.Helper()

	dataDir := t.TempDir()
	cfg, err := config.Load("", dataDir)
	require.NoError(t, err)

	database, err := settings.Open(cfg.SettingsPath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return &Flags{
		LogLevel: "info",
		DataDir:  dataDir,
		Config:   cfg,
		Settings: settings.NewKVStore(database),
	}
}

type testApp struct {
	flags  *Flags
	author *AuthorCmd
}

// run executes args against a root command without the Before hook; flags
// are expected to be populated already.
func (a testApp) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	author := a.author
	if author == nil {
		author = NewAuthorCmd(a.flags)
	}

	root := &cli.Command{
		Name:           "lectern",
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewOpenCmd(a.flags).Register(root)
	root = NewFormatCmd(a.flags).Register(root)
	root = author.Register(root)
	root = NewSettingsCmd(a.flags).Register(root)
	root = NewConfigValidateCmd(a.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"lectern"}, args...))
	return out.String(), err
}

func TestAuthorCmd_SetShowReset(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}

	out, err := app.run(t, "author", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No author name set")

	out, err = app.run(t, "author", "set", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "Author set to Ada Lovelace")

	out, err = app.run(t, "author", "show")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\n", out)

	_, err = app.run(t, "author", "reset")
	require.NoError(t, err)

	out, err = app.run(t, "author", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No author name set")
}

func TestAuthorCmd_SetPrompts(t *testing.T) {
	flags := newTestFlags(t)
	author := NewAuthorCmd(flags)
	author.prompter = settings.PrompterFunc(func(_ context.Context, current string) (string, error) {
		assert.Empty(t, current)
		return "Grace", nil
	})
	app := testApp{flags: flags, author: author}

	out, err := app.run(t, "author", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "Author set to Grace")

	name, err := settings.NewAuthor(flags.Settings).Name(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Grace", name)
}

func TestAuthorCmd_SetPromptCancelled(t *testing.T) {
	flags := newTestFlags(t)
	author := NewAuthorCmd(flags)
	author.prompter = settings.PrompterFunc(func(context.Context, string) (string, error) {
		return "", settings.ErrPromptCancelled
	})

	out, err := testApp{flags: flags, author: author}.run(t, "author", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "Author name left empty")
}

func TestSettingsCmd_ListAndReset(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}

	out, err := app.run(t, "settings", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored preferences")

	_, err = app.run(t, "author", "set", "Ada")
	require.NoError(t, err)

	out, err = app.run(t, "settings", "list", "--format", "json")
	require.NoError(t, err)

	var entries []settingJSON
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, settings.AuthorKey, entries[0].Key)
	assert.JSONEq(t, `"Ada"`, string(entries[0].Value))

	out, err = app.run(t, "settings", "reset", settings.AuthorKey)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed "+settings.AuthorKey)

	_, err = app.run(t, "settings", "reset", settings.AuthorKey)
	assert.ErrorContains(t, err, "no stored preference")

	_, err = app.run(t, "settings", "reset")
	assert.ErrorContains(t, err, "missing key")
}

func TestFormatCmd_Text(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}

	out, err := app.run(t, "format", "--text", "plain words", "--format", "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain words\n", out)
}

func TestFormatCmd_JSONFromFile(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}

	path := filepath.Join(t.TempDir(), "runs.json")
	runs := `[
		{"c": "G", "bold": true},
		{"c": "o", "bold": true, "spaceAfter": true},
		{"c": "d", "url": "https://go.dev"},
		{"c": "­", "ignorable": true},
		{"c": "e", "url": "https://go.dev"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(runs), 0o644))

	out, err := app.run(t, "format", "--file", path, "--format", "json")
	require.NoError(t, err)

	var frags []fragmentJSON
	require.NoError(t, json.Unmarshal([]byte(out), &frags))
	require.Len(t, frags, 2)
	assert.Equal(t, "Go ", frags[0].Text)
	assert.Equal(t, []string{"strong"}, frags[0].Wrappers)
	assert.Equal(t, "de", frags[1].Text)
	assert.Equal(t, "https://go.dev", frags[1].URL)
	assert.Equal(t, []string{"link"}, frags[1].Wrappers)
}

func TestFormatCmd_UnknownFormat(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}
	_, err := app.run(t, "format", "--text", "x", "--format", "html")
	assert.ErrorContains(t, err, `unknown format "html"`)
}

func TestConfigValidateCmd(t *testing.T) {
	flags := newTestFlags(t)
	app := testApp{flags: flags}

	out, err := app.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	flags.Config.Links.Allow = []string{"example.com/[unclosed"}

	out, err = app.run(t, "config", "validate", "--format", "json")
	require.Error(t, err)

	var result struct {
		Valid  bool              `json:"valid"`
		Issues []validationIssue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "links.allow[0]", result.Issues[0].Field)
}

func TestOpenCmd_Arguments(t *testing.T) {
	app := testApp{flags: newTestFlags(t)}

	_, err := app.run(t, "open")
	assert.ErrorContains(t, err, "missing document path")

	_, err = app.run(t, "open", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSessionOptions(t *testing.T) {
	flags := newTestFlags(t)
	cfg := flags.Config
	cfg.EnableAddToNote = true
	cfg.TextSelectionMode = config.ModeUnderline

	author := settings.NewAuthor(nil)
	require.NoError(t, author.Set(context.Background(), "Ada"))

	opts := SessionOptions(cfg, author, true, zerolog.Nop())

	assert.True(t, opts.ReadOnly)
	assert.True(t, opts.EnableAddToNote)
	assert.Equal(t, reader.AnnotationUnderline, opts.Mode)
	assert.Equal(t, cfg.Palette(), opts.Palette)
	assert.Equal(t, "Ada", opts.Author())

	assert.False(t, SessionOptions(cfg, author, false, zerolog.Nop()).ReadOnly)
}

func TestExportAnnotations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	st := reader.State{Annotations: []reader.Annotation{{ID: "A1", Type: reader.AnnotationHighlight, Text: "claim"}}}
	notes := []reader.AnnotationDraft{{Text: "quoted"}}

	require.NoError(t, exportAnnotations(path, st, notes))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Annotations []map[string]any `json:"annotations"`
		Notes       []map[string]any `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Annotations, 1)
	require.Len(t, got.Notes, 1)
}

func TestExportAnnotations_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, exportAnnotations(path, reader.State{}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"annotations": []}`, string(data))
}
