// Package config handles configuration loading and validation for lectern.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Built-in action names for keybindings.
const (
	ActionQuit          = "quit"
	ActionFind          = "find"
	ActionFindNext      = "find_next"
	ActionFindPrevious  = "find_previous"
	ActionToggleSidebar = "toggle_sidebar"
	ActionSidebarView   = "sidebar_view"
	ActionToggleSplit   = "toggle_split"
	ActionFocusOther    = "focus_other"
	ActionConvert       = "convert"
	ActionChangeAuthor  = "change_author"
	ActionToggleMode    = "toggle_mode"
	ActionNextPage      = "next_page"
	ActionPrevPage      = "prev_page"
	ActionSelect        = "select"
	ActionOpenLink      = "open_link"
	ActionClose         = "close"
	ActionBack          = "back"
	ActionContextMenu   = "context_menu"
	ActionAppearance    = "appearance"
	ActionTheme         = "theme"
	ActionHelp          = "help"
)

var actions = []string{
	ActionQuit, ActionFind, ActionFindNext, ActionFindPrevious,
	ActionToggleSidebar, ActionSidebarView, ActionToggleSplit, ActionFocusOther,
	ActionConvert, ActionChangeAuthor, ActionToggleMode, ActionNextPage,
	ActionPrevPage, ActionSelect, ActionOpenLink, ActionClose, ActionBack,
	ActionContextMenu, ActionAppearance, ActionTheme, ActionHelp,
}

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"q":         {Action: ActionQuit, Help: "quit"},
	"ctrl+f":    {Action: ActionFind, Help: "find"},
	"/":         {Action: ActionFind, Help: "find"},
	"n":         {Action: ActionFindNext, Help: "next match"},
	"N":         {Action: ActionFindPrevious, Help: "previous match"},
	"b":         {Action: ActionToggleSidebar, Help: "sidebar"},
	"v":         {Action: ActionSidebarView, Help: "sidebar view"},
	"|":         {Action: ActionToggleSplit, Help: "split"},
	"tab":       {Action: ActionFocusOther, Help: "focus view"},
	"C":         {Action: ActionConvert, Help: "convert matches"},
	"A":         {Action: ActionChangeAuthor, Help: "author"},
	"m":         {Action: ActionToggleMode, Help: "highlight/underline"},
	"j":         {Action: ActionNextPage, Help: "next page"},
	"k":         {Action: ActionPrevPage, Help: "previous page"},
	"s":         {Action: ActionSelect, Help: "select"},
	"o":         {Action: ActionOpenLink, Help: "open link"},
	"esc":       {Action: ActionClose, Help: "close"},
	"backspace": {Action: ActionBack, Help: "back"},
	".":         {Action: ActionContextMenu, Help: "menu"},
	"V":         {Action: ActionAppearance, Help: "appearance"},
	"T":         {Action: ActionTheme, Help: "theme"},
	"?":         {Action: ActionHelp, Help: "help"},
}

// Config holds the application configuration.
type Config struct {
	Theme             string                `yaml:"theme"`
	Locale            string                `yaml:"locale"`
	ReadOnly          bool                  `yaml:"read_only"`
	EnableAddToNote   bool                  `yaml:"enable_add_to_note"`
	TextSelectionMode string                `yaml:"text_selection_mode"`
	Popup             PopupConfig           `yaml:"popup"`
	AnnotationColors  []AnnotationColor     `yaml:"annotation_colors"`
	Links             LinksConfig           `yaml:"links"`
	Keybindings       map[string]Keybinding `yaml:"keybindings"`
	SettingsDB        string                `yaml:"settings_db"`
	DataDir           string                `yaml:"-"` // set by caller, not from config file
}

// PopupConfig controls popup geometry, in terminal cells.
type PopupConfig struct {
	Padding int `yaml:"padding"`
	Width   int `yaml:"width"`
}

// AnnotationColor is one entry of the annotation color palette. Name is an
// i18n string id.
type AnnotationColor struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// LinksConfig restricts which overlay links may be opened.
type LinksConfig struct {
	// Allow holds doublestar patterns matched against the link URL with its
	// scheme removed, e.g. "**.wikipedia.org/**". Empty allows everything.
	Allow []string `yaml:"allow"`

	// Command opens allowed links. A plain command gets the URL as its
	// argument; a template such as "firefox {{ .URL | shq }}" runs via sh.
	// Empty uses the platform opener.
	Command string `yaml:"command"`
}

// Keybinding maps a key to a built-in action.
type Keybinding struct {
	Action string `yaml:"action"`
	Help   string `yaml:"help"`
}

// Text selection modes.
const (
	ModeHighlight = "highlight"
	ModeUnderline = "underline"
)

// DefaultAnnotationColors is the built-in palette.
var DefaultAnnotationColors = []AnnotationColor{
	{Name: "general.yellow", Color: "#ffd400"},
	{Name: "general.red", Color: "#ff6666"},
	{Name: "general.green", Color: "#5fb236"},
	{Name: "general.blue", Color: "#2ea8e5"},
	{Name: "general.purple", Color: "#a28ae5"},
	{Name: "general.magenta", Color: "#e56eee"},
	{Name: "general.orange", Color: "#f19837"},
	{Name: "general.gray", Color: "#aaaaaa"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:             "tokyo-night",
		Locale:            "en",
		TextSelectionMode: ModeHighlight,
		Popup: PopupConfig{
			Padding: 1,
			Width:   48,
		},
		AnnotationColors: append([]AnnotationColor(nil), DefaultAnnotationColors...),
		Keybindings:      map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.TextSelectionMode == "" {
		c.TextSelectionMode = defaults.TextSelectionMode
	}
	if c.Popup.Padding == 0 {
		c.Popup.Padding = defaults.Popup.Padding
	}
	if c.Popup.Width == 0 {
		c.Popup.Width = defaults.Popup.Width
	}
	if len(c.AnnotationColors) == 0 {
		c.AnnotationColors = defaults.AnnotationColors
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Popup.Padding < 0 {
		return fmt.Errorf("popup.padding cannot be negative")
	}

	if c.Popup.Width < 16 {
		return fmt.Errorf("popup.width must be at least 16")
	}

	switch c.TextSelectionMode {
	case ModeHighlight, ModeUnderline:
	default:
		return fmt.Errorf("text_selection_mode must be %q or %q, got %q", ModeHighlight, ModeUnderline, c.TextSelectionMode)
	}

	for key, kb := range c.Keybindings {
		if !isValidAction(kb.Action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
		}
	}

	return nil
}

// Palette returns the configured annotation colors in order.
func (c *Config) Palette() []string {
	out := make([]string, len(c.AnnotationColors))
	for i, ac := range c.AnnotationColors {
		out[i] = ac.Color
	}
	return out
}

// SettingsPath returns the path to the settings database.
func (c *Config) SettingsPath() string {
	if c.SettingsDB != "" {
		return c.SettingsDB
	}
	return filepath.Join(c.DataDir, "settings.db")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "lectern.log")
}

func isValidAction(action string) bool {
	return slices.Contains(actions, action)
}
