package graph

import (
	"sort"

	"causenet/atlas/internal/snapshot"
)

// Entity is one hazard in the causal network. Causes and CausedBy carry the
// raw declarations from the snapshot; ConnectionCount is their combined
// length and stays fixed for the lifetime of one loaded snapshot.
type Entity struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	Category        Category `json:"-"`
	CategoryName    string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Causes          []string `json:"causes"`
	CausedBy        []string `json:"caused_by"`
	ConnectionCount int      `json:"connection_count"`
}

// CausalEdge is one materialized "causes" relationship. An edge exists iff
// the source declares it; Declared is true iff the target's incoming list
// also names the source.
type CausalEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Declared bool   `json:"declared"`
}

// Network holds the entity set with its classified edge list. Order preserves
// snapshot ingestion order so edge construction is order-stable.
type Network struct {
	Entities map[string]*Entity
	Order    []string
	Edges    []CausalEdge

	// DanglingRefs counts outgoing declarations that named an unknown
	// entity and were dropped during classification.
	DanglingRefs int
}

// NewNetwork builds a Network from entities, classifying every edge.
// Entities must be given in a stable order.
func NewNetwork(entities []*Entity) *Network {
	byID := make(map[string]*Entity, len(entities))
	order := make([]string, 0, len(entities))
	for _, e := range entities {
		if _, dup := byID[e.ID]; dup {
			continue
		}
		byID[e.ID] = e
		order = append(order, e.ID)
	}

	net := &Network{Entities: byID, Order: order}
	net.Edges = classifyEdges(net)
	return net
}

// FromSnapshot converts raw snapshot nodes into a classified Network.
// Category names resolve once here, never again at lookup time.
func FromSnapshot(snap *snapshot.Snapshot) *Network {
	entities := make([]*Entity, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		cat := ResolveCategory(n.TypeName)
		entities = append(entities, &Entity{
			ID:              n.ID,
			Label:           n.Label,
			Category:        cat,
			CategoryName:    cat.String(),
			Subcategory:     n.ClusterName,
			Causes:          n.Causes,
			CausedBy:        n.CausedBy,
			ConnectionCount: len(n.Causes) + len(n.CausedBy),
		})
	}
	return NewNetwork(entities)
}

// classifyEdges materializes one edge per outgoing declaration. Declarations
// naming an unknown entity are dropped; duplicate (source,target) pairs are
// collapsed to the first occurrence. Incoming-only declarations never become
// edges: edge construction is deliberately conservative, matching the
// source-authoritative direction of the dataset.
func classifyEdges(net *Network) []CausalEdge {
	type pair struct{ s, t string }
	seen := make(map[pair]bool)

	var edges []CausalEdge
	for _, id := range net.Order {
		src := net.Entities[id]
		for _, targetID := range src.Causes {
			target, ok := net.Entities[targetID]
			if !ok {
				net.DanglingRefs++
				continue
			}
			key := pair{id, targetID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, CausalEdge{
				Source:   id,
				Target:   targetID,
				Declared: containsID(target.CausedBy, id),
			})
		}
	}
	return edges
}

// FilterCategories returns a new Network without entities in hidden
// categories. Edges are re-classified over the remaining set; connection
// counts keep their snapshot-derived values.
func (n *Network) FilterCategories(hidden map[Category]bool) *Network {
	if len(hidden) == 0 {
		return n
	}
	var kept []*Entity
	for _, id := range n.Order {
		e := n.Entities[id]
		if !hidden[e.Category] {
			kept = append(kept, e)
		}
	}
	return NewNetwork(kept)
}

// DeclaredOnly returns the subset of edges attested by both endpoints
func (n *Network) DeclaredOnly() []CausalEdge {
	var out []CausalEdge
	for _, e := range n.Edges {
		if e.Declared {
			out = append(out, e)
		}
	}
	return out
}

// Degree returns the classified graph degree of an entity: the number of
// incident materialized edges. Always >= the entity's declared degree for
// declared-consistent datasets.
func (n *Network) Degree(id string) int {
	count := 0
	for _, e := range n.Edges {
		if e.Source == id || e.Target == id {
			count++
		}
	}
	return count
}

// EntityIDs returns all entity IDs sorted (for deterministic output)
func (n *Network) EntityIDs() []string {
	ids := make([]string, 0, len(n.Entities))
	for id := range n.Entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
