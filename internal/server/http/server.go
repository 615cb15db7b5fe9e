package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/ekisa-team/speeddial/internal/service"
)

const (
	apiTitle          = "Speed Dial API"
	apiVersion        = "1.0.0"
	readHeaderTimeout = 5 * time.Second
)

// Server serves the speed dial HTTP API.
type Server struct {
	srv *http.Server
}

// Register registers every handler on api.
func Register(api huma.API, svc *service.SpeedDial) {
	NewSpeedDialHandler(api, svc)
	NewEventsHandler(api, svc)
}

// NewAPI creates the huma API on mux with every handler registered.
func NewAPI(mux *http.ServeMux, svc *service.SpeedDial) huma.API {
	api := humago.New(mux, huma.DefaultConfig(apiTitle, apiVersion))
	Register(api, svc)

	return api
}

// NewServer creates a server listening on port.
func NewServer(svc *service.SpeedDial, port int) *Server {
	mux := http.NewServeMux()
	NewAPI(mux, svc)

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	slog.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
