package profiler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	s := New(0, zerolog.Nop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func TestServer_BindsLoopback(t *testing.T) {
	s := New(0, zerolog.Nop())
	assert.Empty(t, s.Addr(), "no address before Start")

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Shutdown(context.Background()) }()

	assert.True(t, strings.HasPrefix(s.Addr(), "127.0.0.1:"), s.Addr())
	assert.True(t, strings.HasSuffix(s.URL(), "/debug/pprof/"))
}

func TestServer_Endpoints(t *testing.T) {
	s := startServer(t)

	for _, endpoint := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/symbol"} {
		t.Run(endpoint, func(t *testing.T) {
			resp, err := http.Get("http://" + s.Addr() + endpoint)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_PortInUse(t *testing.T) {
	first := startServer(t)
	_, port, _ := strings.Cut(first.Addr(), ":")
	n, err := strconv.Atoi(port)
	require.NoError(t, err)

	err = New(n, zerolog.Nop()).Start(context.Background())
	assert.ErrorContains(t, err, "listen")
}
