package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"causenet/atlas/internal/graph"
	"causenet/atlas/internal/view"
)

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.GET("/meta", s.getMeta)
	api.GET("/edges", s.getEdges)
	api.GET("/layout/hierarchy", s.getHierarchy)
	api.GET("/layout/orbital", s.getOrbital)
	api.GET("/cascade/:id", s.getCascade)
}

func (s *Server) getMeta(c echo.Context) error {
	s.mu.Lock()
	state := s.ctrl.State()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, graph.Summarize(state.Network, 10))
}

func (s *Server) getEdges(c echo.Context) error {
	declaredOnly := c.QueryParam("declared_only") == "true"

	s.mu.Lock()
	state := s.ctrl.Dispatch(view.EdgesVisibilityChanged{Visible: true, DeclaredOnly: declaredOnly})
	s.mu.Unlock()
	s.rebuilt.Trigger()
	return c.JSON(http.StatusOK, state.Edges)
}

func (s *Server) getHierarchy(c echo.Context) error {
	tension := view.DefaultContext().Tension
	if raw := c.QueryParam("tension"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tension must be in [0,1]"})
		}
		tension = v
	}
	hidden := parseHidden(c.QueryParam("hide"))

	s.mu.Lock()
	s.ctrl.Dispatch(view.FilterTypesChanged{Hidden: hidden})
	state := s.ctrl.Dispatch(view.TensionChanged{Value: tension})
	s.mu.Unlock()
	s.rebuilt.Trigger()
	return c.JSON(http.StatusOK, state.Hierarchy)
}

func (s *Server) getOrbital(c echo.Context) error {
	declaredOnly := c.QueryParam("declared_only") == "true"
	hidden := parseHidden(c.QueryParam("hide"))

	s.mu.Lock()
	s.ctrl.Dispatch(view.FilterTypesChanged{Hidden: hidden})
	state := s.ctrl.Dispatch(view.EdgesVisibilityChanged{Visible: true, DeclaredOnly: declaredOnly})
	s.mu.Unlock()
	s.rebuilt.Trigger()
	return c.JSON(http.StatusOK, state.Orbital)
}

func (s *Server) getCascade(c echo.Context) error {
	id := c.Param("id")
	direction := c.QueryParam("direction")
	depth := intParam(c, "depth", graph.DefaultCascadeConfig().MaxDepth)
	fanout := intParam(c, "fanout", graph.DefaultCascadeConfig().MaxFanout)
	cfg := graph.CascadeConfig{MaxDepth: depth, MaxFanout: fanout}

	s.mu.Lock()
	state := s.ctrl.State()
	s.mu.Unlock()

	switch direction {
	case "forward", "reverse":
		tree := graph.BuildCascade(state.Index, state.Network, id, graph.Direction(direction), cfg, nil)
		if tree == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
		}
		return c.JSON(http.StatusOK, tree)
	case "", "both":
		cascade := graph.BuildBidirectional(state.Index, state.Network, id, cfg)
		if cascade == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
		}
		return c.JSON(http.StatusOK, cascade)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "direction must be forward, reverse, or both"})
	}
}

func parseHidden(raw string) map[graph.Category]bool {
	hidden := make(map[graph.Category]bool)
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			hidden[graph.ResolveCategory(name)] = true
		}
	}
	return hidden
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
