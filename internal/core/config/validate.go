package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"

	"github.com/hay-kot/lectern/internal/core/links"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/pkg/tmpl"
)

// ValidateDeep performs comprehensive validation of the configuration
// including theme names, colors, link patterns, and file accessibility. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check). Validate runs first.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("locale", c.Locale, localeParses),
		c.validateColors(),
		c.validateLinks(),
	)
}

// validateFileAccess checks config file, data directory, and settings db.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("settings_db", c.SettingsDB, isFileOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateColors() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.AnnotationColors))

	for i, ac := range c.AnnotationColors {
		field := fmt.Sprintf("annotation_colors[%d]", i)
		if ac.Name == "" {
			errs = errs.Append(field+".name", fmt.Errorf("name is required"))
		}
		if _, err := colorful.Hex(ac.Color); err != nil {
			errs = errs.Append(field+".color", fmt.Errorf("invalid hex color %q", ac.Color))
			continue
		}
		if seen[ac.Color] {
			errs = errs.Append(field+".color", fmt.Errorf("duplicate color %q", ac.Color))
		}
		seen[ac.Color] = true
	}

	return errs.ToError()
}

func (c *Config) validateLinks() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Links.Allow {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("links.allow[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	if tmpl.IsTemplate(c.Links.Command) {
		sample := links.Target{URL: "https://example.com/a", Scheme: "https", Host: "example.com", Path: "/a"}
		if _, err := tmpl.Render(c.Links.Command, sample); err != nil {
			errs = errs.Append("links.command", err)
		}
	}
	return errs.ToError()
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func localeParses(locale string) error {
	if locale == "" {
		return nil
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("exists but is a directory")
	}
	return nil
}
