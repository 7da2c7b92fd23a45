package settings

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// FormPrompter asks for the author name with a huh form.
type FormPrompter struct {
	Title string
	Theme *huh.Theme
}

func (p FormPrompter) PromptName(ctx context.Context, current string) (string, error) {
	title := p.Title
	if title == "" {
		title = "Enter your name for annotations:"
	}

	name := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&name),
		),
	)
	if p.Theme != nil {
		form = form.WithTheme(p.Theme)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrPromptCancelled
		}
		return "", err
	}
	return name, nil
}

// Interactive reports whether stdin and stdout are terminals, which is
// required before a FormPrompter may run.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
