// Package links opens overlay link targets outside the reader, subject to
// an allow-list of doublestar patterns.
package links

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/lectern/pkg/executil"
	"github.com/hay-kot/lectern/pkg/tmpl"
)

// ErrBlocked is returned when a URL does not match the allow-list.
var ErrBlocked = errors.New("link not allowed")

// Opener checks and opens external links.
type Opener struct {
	exec    executil.Executor
	command string
	allow   []string
}

// NewOpener returns an opener for command, the platform default when empty.
// A plain command receives the URL as its only argument. A command holding
// template actions is rendered with Target and run through sh -c, e.g.
// "firefox --new-tab {{ .URL | shq }}". An empty allow list permits every
// http, https, and mailto link.
func NewOpener(exec executil.Executor, command string, allow []string) *Opener {
	if command == "" {
		command = defaultCommand()
	}
	return &Opener{exec: exec, command: command, allow: allow}
}

func defaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Allowed reports whether raw may be opened. Patterns are matched against
// the URL without its scheme, e.g. "en.wikipedia.org/wiki/Go".
func (o *Opener) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "http", "https", "mailto":
	default:
		return false
	}

	if len(o.allow) == 0 {
		return true
	}

	target := strings.TrimPrefix(strings.TrimPrefix(raw, u.Scheme+":"), "//")
	for _, pattern := range o.allow {
		if ok, err := doublestar.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}

// Target is the data a command template is rendered with.
type Target struct {
	URL    string
	Scheme string
	Host   string
	Path   string
}

// Open launches the external handler for raw.
func (o *Opener) Open(ctx context.Context, raw string) error {
	if !o.Allowed(raw) {
		return fmt.Errorf("%w: %s", ErrBlocked, raw)
	}

	cmd, args := o.command, []string{raw}
	if tmpl.IsTemplate(o.command) {
		u, _ := url.Parse(raw) // Allowed already parsed it
		line, err := tmpl.Render(o.command, Target{URL: raw, Scheme: u.Scheme, Host: u.Host, Path: u.Path})
		if err != nil {
			return fmt.Errorf("link command: %w", err)
		}
		cmd, args = "sh", []string{"-c", line}
	}

	if err := o.exec.Run(ctx, cmd, args...); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	return nil
}
