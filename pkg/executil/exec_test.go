package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_StderrCappedAtMaxLen(t *testing.T) {
	longStderr := strings.Repeat("A", maxStderrLen*2)
	script := fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr)

	err := (&RealExecutor{}).Run(context.Background(), "sh", "-c", script)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, strings.Repeat("A", maxStderrLen))
	assert.NotContains(t, msg, strings.Repeat("A", maxStderrLen+1))
}

func TestRealExecutor_PreservesExitError(t *testing.T) {
	err := (&RealExecutor{}).Run(context.Background(), "sh", "-c", "exit 2")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRealExecutor_Success(t *testing.T) {
	assert.NoError(t, (&RealExecutor{}).Run(context.Background(), "true"))
}

func TestRecordingExecutor(t *testing.T) {
	boom := errors.New("boom")
	e := &RecordingExecutor{Errors: map[string]error{"xdg-open": boom}}

	require.NoError(t, e.Run(context.Background(), "open", "https://go.dev"))
	assert.ErrorIs(t, e.Run(context.Background(), "xdg-open", "x"), boom)

	assert.Equal(t, []RecordedCommand{
		{Cmd: "open", Args: []string{"https://go.dev"}},
		{Cmd: "xdg-open", Args: []string{"x"}},
	}, e.Recorded())

	e.Reset()
	assert.Empty(t, e.Recorded())
}
