package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/lectern/internal/core/kv"
)

// Keys of the preferences kept in the settings database.
const (
	AuthorKey = "settings:annotation_author_name"
	ThemeKey  = "settings:theme"
)

// ErrPromptCancelled is returned by a Prompter when the operator dismisses
// the prompt without answering.
var ErrPromptCancelled = errors.New("prompt cancelled")

// Prompter asks the operator for a name.
type Prompter interface {
	PromptName(ctx context.Context, current string) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, current string) (string, error)

func (f PrompterFunc) PromptName(ctx context.Context, current string) (string, error) {
	return f(ctx, current)
}

// Author is the session-scoped annotation author name. It is loaded from
// the store once and cached; a cancelled prompt leaves it empty so the next
// Ensure call asks again.
type Author struct {
	mu     sync.Mutex
	store  *kv.Setting[string]
	name   string
	loaded bool
}

// NewAuthor returns an Author backed by store. A nil store keeps the name
// in memory only.
func NewAuthor(store kv.KV) *Author {
	a := &Author{}
	if store != nil {
		a.store = kv.NewSetting(store, AuthorKey, "")
	}
	return a
}

// Name returns the cached name, loading it from the store on first use.
func (a *Author) Name(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load(ctx)
}

// Set stores a new name. Blank names are rejected.
func (a *Author) Set(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("author name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Set(ctx, name); err != nil {
			return fmt.Errorf("save author name: %w", err)
		}
	}
	a.name, a.loaded = name, true
	return nil
}

// Reset forgets the name so the next Ensure prompts again.
func (a *Author) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Reset(ctx); err != nil {
			return fmt.Errorf("reset author name: %w", err)
		}
	}
	a.name, a.loaded = "", false
	return nil
}

// Ensure returns the stored name, prompting for one when it is empty. A
// cancelled prompt yields an empty name and no error.
func (a *Author) Ensure(ctx context.Context, p Prompter) (string, error) {
	name, err := a.Name(ctx)
	if err != nil || name != "" || p == nil {
		return name, err
	}
	return a.Change(ctx, p)
}

// Change always prompts, prefilled with the current name.
func (a *Author) Change(ctx context.Context, p Prompter) (string, error) {
	current, err := a.Name(ctx)
	if err != nil {
		return "", err
	}

	name, err := p.PromptName(ctx, current)
	switch {
	case errors.Is(err, ErrPromptCancelled):
		log.Debug().Msg("author prompt cancelled")
		return current, nil
	case err != nil:
		return current, fmt.Errorf("prompt author name: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return current, nil
	}
	if err := a.Set(ctx, name); err != nil {
		return current, err
	}
	return strings.TrimSpace(name), nil
}

func (a *Author) load(ctx context.Context) (string, error) {
	if a.loaded || a.store == nil {
		return a.name, nil
	}

	name, err := a.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load author name: %w", err)
	}

	a.name, a.loaded = name, true
	return a.name, nil
}
