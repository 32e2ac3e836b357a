package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/scythe504/imposter-backend/internal/game"
	"github.com/scythe504/imposter-backend/internal/websocket"
	"github.com/sirupsen/logrus"
)

type Server struct {
	registry      *game.Registry
	hub           *websocket.Hub
	allowedOrigin string
	started       time.Time

	http *http.Server
	log  *logrus.Entry
}

func NewServer(addr, allowedOrigin string, registry *game.Registry, hub *websocket.Hub) *Server {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	s := &Server{
		registry:      registry,
		hub:           hub,
		allowedOrigin: allowedOrigin,
		started:       time.Now(),
		log:           logrus.WithField("component", "server"),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return s
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.log.Infof("[ListenAndServe] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes every websocket, which are
// hijacked and so not covered by http.Server.Shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.hub.Close()
	return err
}
