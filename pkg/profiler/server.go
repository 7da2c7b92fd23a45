// Package profiler serves net/http/pprof on a loopback port for debugging a
// running reader.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Server exposes the pprof handlers under /debug/pprof/.
type Server struct {
	http     *http.Server
	listener net.Listener
	port     int
	logger   zerolog.Logger
}

// New returns a server for port on 127.0.0.1. Port 0 picks a free port.
func New(port int, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		http:   &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		port:   port,
		logger: logger,
	}
}

// Start listens and serves in the background. It returns once the listener
// is bound or serving has failed.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("profiler listening")

	failed := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return fmt.Errorf("serve profiler: %w", err)
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// Addr is the bound host:port, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL is the pprof index on the bound address.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/debug/pprof/"
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug().Msg("profiler shutting down")
	return s.http.Shutdown(ctx)
}
