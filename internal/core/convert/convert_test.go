package convert

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/lectern/internal/core/logging"
	"github.com/hay-kot/lectern/internal/core/reader"
)

func TestNewRequest(t *testing.T) {
	palette := []string{"#ffd400", "#ff6666"}

	req := NewRequest(reader.ViewPrimary, "", reader.Tool{}, palette)
	assert.Equal(t, reader.AnnotationHighlight, req.Type)
	assert.Equal(t, "#ffd400", req.Color)

	req = NewRequest(reader.ViewSecondary, reader.AnnotationUnderline, reader.Tool{Color: "#5fb236"}, palette)
	assert.Equal(t, reader.AnnotationUnderline, req.Type)
	assert.Equal(t, "#5fb236", req.Color)
	assert.Equal(t, reader.ViewSecondary, req.View)

	req = NewRequest(reader.ViewPrimary, "", reader.Tool{}, nil)
	assert.Empty(t, req.Color)
}

func TestMachine_Success(t *testing.T) {
	m := NewMachine(zerolog.Nop())
	var got Request
	engine := EngineFunc(func(_ context.Context, req Request) (int, error) {
		got = req
		return 3, nil
	})

	req := Request{View: reader.ViewPrimary, Type: reader.AnnotationHighlight, Color: "#ffd400"}
	res, err := m.Convert(context.Background(), engine, req)
	require.NoError(t, err)

	assert.Equal(t, StatusDone, res.Status)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, req, got)
	assert.Equal(t, StatusDone, m.Status())
}

func TestMachine_NoEngineIsSilentNoop(t *testing.T) {
	var buf bytes.Buffer
	m := NewMachine(zerolog.New(&buf))

	res, err := m.Convert(context.Background(), nil, Request{View: reader.ViewPrimary})
	require.NoError(t, err, "missing engine is not reported to the caller as an error")

	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrNoEngine)
	assert.Zero(t, res.Created)
	assert.Contains(t, buf.String(), "no document view bound")
}

func TestMachine_EngineError(t *testing.T) {
	m := NewMachine(zerolog.Nop())
	boom := errors.New("boom")

	res, err := m.Convert(context.Background(), EngineFunc(func(context.Context, Request) (int, error) {
		return 0, boom
	}), Request{})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, boom)
}

func TestMachine_GuardsInFlight(t *testing.T) {
	m := NewMachine(zerolog.Nop())

	require.NoError(t, m.Begin())
	assert.True(t, m.Busy())
	assert.ErrorIs(t, m.Begin(), ErrInFlight)

	_, err := m.Convert(context.Background(), nil, Request{})
	assert.ErrorIs(t, err, ErrInFlight)

	m.Reset()
	assert.Equal(t, StatusConverting, m.Status(), "reset is ignored while converting")

	res := m.Run(context.Background(), nil, Request{})
	assert.Equal(t, StatusFailed, res.Status)
	assert.False(t, m.Busy())

	require.NoError(t, m.Begin(), "a finished machine accepts a new conversion")
}

func TestMachine_Reset(t *testing.T) {
	m := NewMachine(zerolog.Nop())
	_, _ = m.Convert(context.Background(), nil, Request{})
	require.Equal(t, StatusFailed, m.Status())

	m.Reset()
	assert.Equal(t, StatusIdle, m.Status())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "converting", StatusConverting.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestMachine_LogsViewFromContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewMachine(logging.ComponentOf(zerolog.New(&buf), "convert"))

	ctx := logging.WithView(context.Background(), reader.ViewSecondary.String())
	res, err := m.Convert(ctx, EngineFunc(func(context.Context, Request) (int, error) {
		return 2, nil
	}), Request{View: reader.ViewSecondary})
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)

	out := buf.String()
	assert.Contains(t, out, `"run_id":"`+res.RunID+`"`)
	assert.Contains(t, out, `"cmp":"convert"`)
	assert.Contains(t, out, `"view":"secondary"`)
	assert.Contains(t, out, `"created":2`)
}
