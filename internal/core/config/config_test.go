package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 1, cfg.Popup.Padding)
	assert.Equal(t, ModeHighlight, cfg.TextSelectionMode)
	assert.Equal(t, "#ffd400", cfg.Palette()[0])
	assert.Len(t, cfg.Palette(), 8)
	assert.Equal(t, filepath.Join(dataDir, "settings.db"), cfg.SettingsPath())
	assert.Equal(t, ActionFind, cfg.Keybindings["/"].Action)
}

func TestLoad_OverridesAndMergesKeybindings(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
read_only: true
text_selection_mode: underline
popup:
  padding: 3
annotation_colors:
  - name: general.blue
    color: "#2ea8e5"
links:
  allow: ["**.wikipedia.org/**"]
keybindings:
  x:
    action: quit
settings_db: /tmp/custom.db
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, ModeUnderline, cfg.TextSelectionMode)
	assert.Equal(t, 3, cfg.Popup.Padding)
	assert.Equal(t, 48, cfg.Popup.Width, "unset width falls back to default")
	assert.Equal(t, []string{"#2ea8e5"}, cfg.Palette())
	assert.Equal(t, []string{"**.wikipedia.org/**"}, cfg.Links.Allow)
	assert.Equal(t, "/tmp/custom.db", cfg.SettingsPath())
	assert.Equal(t, ActionQuit, cfg.Keybindings["x"].Action)
	assert.Equal(t, ActionQuit, cfg.Keybindings["q"].Action, "defaults survive the merge")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "theme: [unterminated"), t.TempDir())
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "negative padding", mutate: func(c *Config) { c.Popup.Padding = -1 }, wantErr: "popup.padding"},
		{name: "narrow popup", mutate: func(c *Config) { c.Popup.Width = 4 }, wantErr: "popup.width"},
		{name: "bad mode", mutate: func(c *Config) { c.TextSelectionMode = "ink" }, wantErr: "text_selection_mode"},
		{
			name:    "unknown action",
			mutate:  func(c *Config) { c.Keybindings = map[string]Keybinding{"z": {Action: "explode"}} },
			wantErr: `invalid action "explode"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

