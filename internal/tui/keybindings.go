package tui

import (
	"maps"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/tui/components"
)

// KeybindingResolver maps key presses to configured reader actions.
type KeybindingResolver struct {
	keybindings map[string]config.Keybinding
}

// NewKeybindingResolver creates a resolver over merged keybindings.
func NewKeybindingResolver(keybindings map[string]config.Keybinding) *KeybindingResolver {
	return &KeybindingResolver{keybindings: keybindings}
}

// Resolve returns the action bound to key.
func (h *KeybindingResolver) Resolve(key string) (string, bool) {
	kb, ok := h.keybindings[key]
	if !ok || kb.Action == "" {
		return "", false
	}
	return kb.Action, true
}

// KeyFor returns the first key, in sorted order, bound to action.
func (h *KeybindingResolver) KeyFor(action string) string {
	for _, k := range slices.Sorted(maps.Keys(h.keybindings)) {
		if h.keybindings[k].Action == action {
			return k
		}
	}
	return ""
}

// KeyBindings returns bubbles key bindings for display, one per action, in
// the order the actions are first bound.
func (h *KeybindingResolver) KeyBindings() []key.Binding {
	byAction := make(map[string][]string)
	var order []string
	for _, k := range slices.Sorted(maps.Keys(h.keybindings)) {
		a := h.keybindings[k].Action
		if _, seen := byAction[a]; !seen {
			order = append(order, a)
		}
		byAction[a] = append(byAction[a], k)
	}

	bindings := make([]key.Binding, 0, len(order))
	for _, a := range order {
		keys := byAction[a]
		help := h.keybindings[keys[0]].Help
		if help == "" {
			help = a
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), help),
		))
	}
	return bindings
}

// HelpSections groups the bindings for the help dialog.
func (h *KeybindingResolver) HelpSections() []components.HelpDialogSection {
	entries := make([]components.HelpEntry, 0, len(h.keybindings))
	for _, b := range h.KeyBindings() {
		entries = append(entries, components.HelpEntry{Key: b.Help().Key, Desc: b.Help().Desc})
	}

	return []components.HelpDialogSection{
		{Title: "Reader", Entries: entries},
		{Title: "Popups", Entries: []components.HelpEntry{
			{Key: "1-9", Desc: "pick annotation color"},
			{Key: "enter", Desc: "confirm popup action"},
			{Key: "shift+←/→", Desc: "grow or shrink selection"},
			{Key: "c / t / l", Desc: "comment, tags, page label"},
			{Key: "x", Desc: "delete annotation"},
			{Key: "g", Desc: "go to link destination"},
		}},
		{Title: "Find", Entries: []components.HelpEntry{
			{Key: "enter", Desc: "next match"},
			{Key: "shift+enter", Desc: "previous match"},
			{Key: "alt+h", Desc: "highlight all"},
			{Key: "alt+c", Desc: "match case"},
			{Key: "alt+w", Desc: "whole words"},
			{Key: "alt+enter", Desc: "convert matches"},
		}},
	}
}
