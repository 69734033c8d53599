package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"causenet/atlas/internal/graph"
	"causenet/atlas/internal/view"
)

// Server exposes the computed layouts over HTTP. All state changes run
// through a single view.Controller guarded by a mutex, so every response
// reflects one complete rebuild (last write wins, never a partial update).
type Server struct {
	echo *echo.Echo
	log  *log.Logger

	mu   sync.Mutex
	ctrl *view.Controller

	// rebuilt coalesces bursts of state-changing requests into a single
	// summary log line once the burst quiets down
	rebuilt *view.Debouncer
}

// New builds a server over a classified network
func New(base *graph.Network, logger *log.Logger) *Server {
	s := &Server{
		echo: echo.New(),
		log:  logger,
		ctrl: view.NewController(base),
	}
	s.rebuilt = view.NewDebouncer(rebuildLogWindow, s.logRebuild)
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger)

	s.routes()
	return s
}

// Start begins serving on addr and blocks until Shutdown or failure
func (s *Server) Start(addr string) error {
	s.log.Info("listening", "addr", addr)
	err := s.echo.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.rebuilt.Stop()
	return s.echo.Shutdown(ctx)
}

const rebuildLogWindow = 250 * time.Millisecond

func (s *Server) logRebuild() {
	s.mu.Lock()
	state := s.ctrl.State()
	s.mu.Unlock()
	s.log.Info("view rebuilt",
		"entities", len(state.Network.Entities),
		"edges", len(state.Edges),
		"tension", state.Context.Tension,
	)
}

// Handler exposes the routed handler for in-process serving
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"dur", time.Since(start),
		)
		return err
	}
}
