package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/http/middleware"
)

const HealthPath = "/api/health"

// Server exposes the worker's health endpoint for consul checks.
type Server struct {
	l   zerolog.Logger
	srv *http.Server
}

func New(addr string) *Server {
	s := &Server{
		l: log.With().
			Str("domain", "server").
			Str("type", "http").
			Logger(),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(s.l))
	r.HandleFunc(HealthPath, s.handleHealth).Methods(http.MethodGet)
	return r
}

// Start serves until ctx is done, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(net.Listener) context.Context {
		return ctx
	}
	errC := make(chan error, 1)
	go func() {
		s.l.Info().Str("address", s.srv.Addr).Msg("http server is running")
		errC <- s.srv.ListenAndServe()
	}()
	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		s.l.Debug().Msg("http server stopped")
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("failed to write health response")
	}
}
