package view

import (
	"causenet/atlas/internal/graph"
	"causenet/atlas/internal/layout"
)

// Context is the immutable view configuration. Commands derive a new Context
// rather than mutating the current one.
type Context struct {
	Hidden       map[graph.Category]bool
	EdgesVisible bool
	DeclaredOnly bool
	Tension      float64
	SelectedID   string
	HopCount     int
}

// DefaultContext returns the view configuration used on first load
func DefaultContext() Context {
	return Context{
		EdgesVisible: true,
		Tension:      0.85,
		HopCount:     graph.DefaultCascadeConfig().MaxDepth,
	}
}

// Command is a discrete named signal from the interaction layer. Each
// command triggers exactly one full rebuild of the derived state.
type Command interface{ isCommand() }

// FilterTypesChanged replaces the hidden category set
type FilterTypesChanged struct{ Hidden map[graph.Category]bool }

// EdgesVisibilityChanged toggles edge rendering and the declared-only filter
type EdgesVisibilityChanged struct {
	Visible      bool
	DeclaredOnly bool
}

// TensionChanged moves the bundling tension slider
type TensionChanged struct{ Value float64 }

// NodeSelected picks a cascade root (empty ID clears the selection)
type NodeSelected struct{ ID string }

// KHopExpand re-expands the cascade for a node with a new hop count
type KHopExpand struct {
	ID   string
	Hops int
}

func (FilterTypesChanged) isCommand()     {}
func (EdgesVisibilityChanged) isCommand() {}
func (TensionChanged) isCommand()         {}
func (NodeSelected) isCommand()           {}
func (KHopExpand) isCommand()             {}

// State is the complete set of derived structures consumed by the rendering
// layer. Every rebuild replaces the previous State wholesale; there is no
// incremental patching.
type State struct {
	Context   Context
	Network   *graph.Network
	Edges     []graph.CausalEdge
	Index     *graph.AdjacencyIndex
	Hierarchy *layout.HierarchyResult
	Orbital   *layout.OrbitalResult
	Cascade   *graph.BidirectionalCascade
}

// Controller owns the base snapshot, the current Context, and the latest
// derived State. All computation is synchronous; the caller serializes
// dispatches.
type Controller struct {
	base  *graph.Network
	ctx   Context
	state *State

	hierarchyCfg layout.HierarchyConfig
	orbitalCfg   layout.OrbitalConfig
	cascadeCfg   graph.CascadeConfig
}

// NewController builds a controller over a classified base network and
// computes the initial state.
func NewController(base *graph.Network) *Controller {
	c := &Controller{
		base:         base,
		ctx:          DefaultContext(),
		hierarchyCfg: layout.DefaultHierarchyConfig(),
		orbitalCfg:   layout.DefaultOrbitalConfig(),
		cascadeCfg:   graph.DefaultCascadeConfig(),
	}
	c.state = c.rebuild()
	return c
}

// State returns the latest derived state
func (c *Controller) State() *State {
	return c.state
}

// Dispatch applies one command, rebuilds the derived state from canonical
// inputs, and returns it. Last write wins.
func (c *Controller) Dispatch(cmd Command) *State {
	c.ctx = reduce(c.ctx, cmd)
	c.state = c.rebuild()
	return c.state
}

// reduce maps (context, command) to the next context. Pure.
func reduce(ctx Context, cmd Command) Context {
	next := ctx
	switch m := cmd.(type) {
	case FilterTypesChanged:
		hidden := make(map[graph.Category]bool, len(m.Hidden))
		for k, v := range m.Hidden {
			if v {
				hidden[k] = true
			}
		}
		next.Hidden = hidden
	case EdgesVisibilityChanged:
		next.EdgesVisible = m.Visible
		next.DeclaredOnly = m.DeclaredOnly
	case TensionChanged:
		next.Tension = m.Value
	case NodeSelected:
		next.SelectedID = m.ID
	case KHopExpand:
		next.SelectedID = m.ID
		next.HopCount = m.Hops
	}
	return next
}

func (c *Controller) rebuild() *State {
	filtered := c.base.FilterCategories(c.ctx.Hidden)

	var visible []graph.CausalEdge
	if c.ctx.EdgesVisible {
		if c.ctx.DeclaredOnly {
			visible = filtered.DeclaredOnly()
		} else {
			visible = filtered.Edges
		}
	}

	idx := graph.BuildAdjacency(filtered)

	s := &State{
		Context:   c.ctx,
		Network:   filtered,
		Edges:     visible,
		Index:     idx,
		Hierarchy: layout.BuildHierarchy(filtered, visible, c.ctx.Tension, c.hierarchyCfg),
		Orbital:   layout.BuildOrbital(filtered, visible, c.orbitalCfg),
	}

	if c.ctx.SelectedID != "" {
		cfg := c.cascadeCfg
		if c.ctx.HopCount > 0 {
			cfg.MaxDepth = c.ctx.HopCount
		}
		s.Cascade = graph.BuildBidirectional(idx, filtered, c.ctx.SelectedID, cfg)
	}
	return s
}
