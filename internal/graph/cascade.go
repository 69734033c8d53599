package graph

// Direction selects which adjacency a cascade expands along
type Direction string

const (
	DirectionForward Direction = "forward" // effects: what this hazard causes
	DirectionReverse Direction = "reverse" // triggers: what causes this hazard
)

// CascadeNode is one node of a drill-down cascade tree. A ghost node marks a
// hazard already expanded earlier in the same direction: recursion stops there
// so cyclic causal chains terminate instead of looping.
type CascadeNode struct {
	ID              string         `json:"id"`
	Label           string         `json:"label"`
	Category        string         `json:"category"`
	ConnectionCount int            `json:"connection_count"`
	Children        []*CascadeNode `json:"children,omitempty"`
	Ghost           bool           `json:"ghost,omitempty"`
	Truncated       int            `json:"truncated,omitempty"`
	TotalChildren   int            `json:"total_children"`
}

// CascadeConfig bounds cascade expansion
type CascadeConfig struct {
	MaxDepth  int
	MaxFanout int
}

// DefaultCascadeConfig returns sensible defaults
func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{MaxDepth: 3, MaxFanout: 6}
}

// BidirectionalCascade holds the two trees expanded from one root
type BidirectionalCascade struct {
	Root     string       `json:"root"`
	Effects  *CascadeNode `json:"effects,omitempty"`
	Triggers *CascadeNode `json:"triggers,omitempty"`
}

// BuildCascade expands a depth-bounded, fan-out-bounded tree from rootID in
// the given direction. The visited set is mutated during expansion; callers
// wanting a fresh traversal pass a fresh set. A missing root yields nil,
// not an error.
func BuildCascade(idx *AdjacencyIndex, net *Network, rootID string, dir Direction, cfg CascadeConfig, visited map[string]bool) *CascadeNode {
	if _, ok := net.Entities[rootID]; !ok {
		return nil
	}
	if visited == nil {
		visited = make(map[string]bool)
	}
	return expandCascade(idx, net, rootID, dir, cfg.MaxDepth, cfg.MaxFanout, visited, true)
}

// BuildBidirectional expands both directions from the same root. Each
// direction gets its own copy of the seed visited set (the root itself), so a
// hazard reached on the triggers side can still appear on the effects side.
func BuildBidirectional(idx *AdjacencyIndex, net *Network, rootID string, cfg CascadeConfig) *BidirectionalCascade {
	if _, ok := net.Entities[rootID]; !ok {
		return nil
	}
	seed := map[string]bool{rootID: true}
	effects := expandCascade(idx, net, rootID, DirectionForward, cfg.MaxDepth, cfg.MaxFanout, copySet(seed), true)
	triggers := expandCascade(idx, net, rootID, DirectionReverse, cfg.MaxDepth, cfg.MaxFanout, copySet(seed), true)
	return &BidirectionalCascade{Root: rootID, Effects: effects, Triggers: triggers}
}

func expandCascade(idx *AdjacencyIndex, net *Network, id string, dir Direction, depth, fanout int, visited map[string]bool, root bool) *CascadeNode {
	ent, ok := net.Entities[id]
	if !ok {
		return nil
	}
	node := &CascadeNode{
		ID:              id,
		Label:           ent.Label,
		Category:        ent.CategoryName,
		ConnectionCount: ent.ConnectionCount,
	}

	// Cycle break: a revisited id becomes a ghost leaf, never an error.
	// The root may be pre-seeded by its caller, so it is exempt.
	if visited[id] && !root {
		node.Ghost = true
		return node
	}
	visited[id] = true

	neighbors := idx.Neighbors(id, dir)
	node.TotalChildren = len(neighbors)

	// Depth exhaustion is an ordinary boundary, not a cycle
	if depth <= 0 {
		return node
	}

	kept := neighbors
	if fanout > 0 && len(kept) > fanout {
		kept = kept[:fanout]
		node.Truncated = len(neighbors) - fanout
	}
	for _, nb := range kept {
		child := expandCascade(idx, net, nb.ID, dir, depth-1, fanout, visited, false)
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
