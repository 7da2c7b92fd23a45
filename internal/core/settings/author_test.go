package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(answers ...any) (Prompter, *int) {
	calls := 0
	return PrompterFunc(func(context.Context, string) (string, error) {
		a := answers[calls]
		calls++
		if err, ok := a.(error); ok {
			return "", err
		}
		return a.(string), nil
	}), &calls
}

func TestAuthor_EnsurePromptsOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	p, calls := scripted("Ada")
	name, err := NewAuthor(store).Ensure(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, 1, *calls)

	// A fresh session reads the stored name without prompting.
	name, err = NewAuthor(store).Ensure(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, 1, *calls)
}

func TestAuthor_CancelLeavesEmptyAndRetries(t *testing.T) {
	ctx := context.Background()
	a := NewAuthor(newTestKVStore(t))

	p, calls := scripted(ErrPromptCancelled, "Grace")

	name, err := a.Ensure(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = a.Ensure(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Grace", name)
	assert.Equal(t, 2, *calls)
}

func TestAuthor_PromptErrorIsWrapped(t *testing.T) {
	boom := errors.New("tty gone")
	p, _ := scripted(boom)

	_, err := NewAuthor(nil).Ensure(context.Background(), p)
	assert.ErrorIs(t, err, boom)
}

func TestAuthor_ChangeKeepsCurrentOnBlank(t *testing.T) {
	ctx := context.Background()
	a := NewAuthor(nil)
	require.NoError(t, a.Set(ctx, "  Ada "))

	p, _ := scripted("   ")
	name, err := a.Change(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
}

func TestAuthor_SetRejectsBlank(t *testing.T) {
	assert.Error(t, NewAuthor(nil).Set(context.Background(), " "))
}

func TestAuthor_ResetPromptsAgain(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)
	a := NewAuthor(store)
	require.NoError(t, a.Set(ctx, "Ada"))

	require.NoError(t, a.Reset(ctx))

	name, err := NewAuthor(store).Name(ctx)
	require.NoError(t, err)
	assert.Empty(t, name, "reset removes the stored value")

	p, calls := scripted("Grace")
	name, err = a.Ensure(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Grace", name)
	assert.Equal(t, 1, *calls)
}
