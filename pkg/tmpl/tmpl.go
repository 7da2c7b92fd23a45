// Package tmpl renders user supplied command templates.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// ShellQuote wraps s in single quotes so a POSIX shell reads it as one
// word. Embedded single quotes become '\''.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var funcs = template.FuncMap{
	"shq":   ShellQuote,
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// IsTemplate reports whether s contains template actions.
func IsTemplate(s string) bool {
	return strings.Contains(s, "{{")
}

// Render executes tmpl with data. Unknown keys are an error.
//
// Functions:
//   - shq: shell-quote a string
//   - join: join a string slice with a separator
//   - lower: lowercase a string
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
