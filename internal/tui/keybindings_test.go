package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/lectern/internal/core/config"
)

func testKeybindings() map[string]config.Keybinding {
	return map[string]config.Keybinding{
		"/":      {Action: config.ActionFind, Help: "find"},
		"ctrl+f": {Action: config.ActionFind},
		"q":      {Action: config.ActionQuit, Help: "quit"},
		"x":      {Action: ""},
	}
}

func TestKeybindingResolver_Resolve(t *testing.T) {
	r := NewKeybindingResolver(testKeybindings())

	action, ok := r.Resolve("ctrl+f")
	require.True(t, ok)
	assert.Equal(t, config.ActionFind, action)

	_, ok = r.Resolve("x")
	assert.False(t, ok, "empty actions do not resolve")

	_, ok = r.Resolve("z")
	assert.False(t, ok)
}

func TestKeybindingResolver_KeyFor(t *testing.T) {
	r := NewKeybindingResolver(testKeybindings())

	assert.Equal(t, "/", r.KeyFor(config.ActionFind), "first key in sorted order")
	assert.Equal(t, "q", r.KeyFor(config.ActionQuit))
	assert.Empty(t, r.KeyFor(config.ActionTheme))
}

func TestKeybindingResolver_KeyBindings(t *testing.T) {
	r := NewKeybindingResolver(map[string]config.Keybinding{
		"ctrl+f": {Action: config.ActionFind, Help: "find"},
		"f":      {Action: config.ActionFind},
		"q":      {Action: config.ActionQuit},
	})

	bindings := r.KeyBindings()
	require.Len(t, bindings, 2)

	find := bindings[0]
	assert.Equal(t, []string{"ctrl+f", "f"}, find.Keys())
	assert.Equal(t, "ctrl+f/f", find.Help().Key)
	assert.Equal(t, "find", find.Help().Desc)

	quit := bindings[1]
	assert.Equal(t, "q", quit.Help().Key)
	assert.Equal(t, config.ActionQuit, quit.Help().Desc, "help falls back to the action name")
}

func TestKeybindingResolver_HelpSections(t *testing.T) {
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	r := NewKeybindingResolver(cfg.Keybindings)

	sections := r.HelpSections()
	require.Len(t, sections, 3)
	assert.Equal(t, "Reader", sections[0].Title)

	var found bool
	for _, e := range sections[0].Entries {
		if e.Desc == "convert matches" {
			found = true
			assert.Equal(t, "C", e.Key)
		}
	}
	assert.True(t, found, "configured actions are listed")
}
