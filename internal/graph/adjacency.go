package graph

import "sort"

// Neighbor is one adjacency entry, carrying the edge's attestation flag
type Neighbor struct {
	ID       string `json:"id"`
	Declared bool   `json:"declared"`
}

// AdjacencyIndex holds per-entity forward ("effects") and reverse
// ("triggers") neighbor lists, each sorted by the neighbor's connection
// count descending so cascade views surface the most connected hazards
// first. Ties keep insertion order.
type AdjacencyIndex struct {
	Forward map[string][]Neighbor
	Reverse map[string][]Neighbor
}

// BuildAdjacency builds both indices from a classified network
func BuildAdjacency(net *Network) *AdjacencyIndex {
	idx := &AdjacencyIndex{
		Forward: make(map[string][]Neighbor, len(net.Entities)),
		Reverse: make(map[string][]Neighbor, len(net.Entities)),
	}
	for _, e := range net.Edges {
		idx.Forward[e.Source] = append(idx.Forward[e.Source], Neighbor{ID: e.Target, Declared: e.Declared})
		idx.Reverse[e.Target] = append(idx.Reverse[e.Target], Neighbor{ID: e.Source, Declared: e.Declared})
	}

	connCount := func(id string) int {
		if ent, ok := net.Entities[id]; ok {
			return ent.ConnectionCount
		}
		return 0
	}
	for _, m := range []map[string][]Neighbor{idx.Forward, idx.Reverse} {
		for _, neighbors := range m {
			sort.SliceStable(neighbors, func(i, j int) bool {
				return connCount(neighbors[i].ID) > connCount(neighbors[j].ID)
			})
		}
	}
	return idx
}

// Neighbors returns the adjacency list for id in the given direction
func (idx *AdjacencyIndex) Neighbors(id string, dir Direction) []Neighbor {
	if dir == DirectionReverse {
		return idx.Reverse[id]
	}
	return idx.Forward[id]
}
