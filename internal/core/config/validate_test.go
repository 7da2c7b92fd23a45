package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Links.Allow = []string{"**.go.dev/**", "example.com/docs/*"}

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_InvalidColors(t *testing.T) {
	cfg := validConfig(t)
	cfg.AnnotationColors = []AnnotationColor{
		{Name: "general.yellow", Color: "#ffd400"},
		{Name: "", Color: "yellow"},
		{Name: "general.red", Color: "#ffd400"},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, "annotation_colors[1].name", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[1].Err.Error(), "invalid hex color")
	assert.Contains(t, fieldErrs[2].Err.Error(), "duplicate color")
}

func TestValidateDeep_InvalidLinkPattern(t *testing.T) {
	cfg := validConfig(t)
	cfg.Links.Allow = []string{"example.com/[unclosed"}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "links.allow[0]", fieldErrs[0].Field)
}

func TestValidateDeep_LinkCommandTemplate(t *testing.T) {
	cfg := validConfig(t)
	cfg.Links.Command = "firefox --new-tab {{ .URL | shq }}"
	require.NoError(t, cfg.ValidateDeep(""))

	cfg.Links.Command = "open {{ .Href }}"
	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "links.command", fieldErrs[0].Field)
}

func TestValidateDeep_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "solarized-neon"

	err := cfg.ValidateDeep("")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")
	assert.ErrorContains(t, err, "not a directory")
}

func TestValidateDeep_StopsAtStructuralError(t *testing.T) {
	cfg := validConfig(t)
	cfg.TextSelectionMode = "ink"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.Error(t, err)
	assert.NotErrorAs(t, err, &fieldErrs)
}
