package graph

import "sort"

// HubEntity is an entity with high classified connectivity
type HubEntity struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Degree   int    `json:"degree"`
	Declared int    `json:"declared"`
}

// Summary describes a classified snapshot at a glance
type Summary struct {
	TotalEntities  int            `json:"total_entities"`
	TotalEdges     int            `json:"total_edges"`
	DeclaredEdges  int            `json:"declared_edges"`
	OneSidedEdges  int            `json:"one_sided_edges"`
	DanglingRefs   int            `json:"dangling_refs"`
	NumComponents  int            `json:"num_components"`
	LargestComp    int            `json:"largest_component"`
	IsolatedCount  int            `json:"isolated_count"`
	CategoryCounts map[string]int `json:"category_counts"`
	Hubs           []HubEntity    `json:"hubs"`
}

// Summarize computes classification and connectivity statistics for a
// network. topN bounds the hub list.
func Summarize(net *Network, topN int) *Summary {
	s := &Summary{
		TotalEntities:  len(net.Entities),
		TotalEdges:     len(net.Edges),
		DanglingRefs:   net.DanglingRefs,
		CategoryCounts: make(map[string]int),
	}
	for _, e := range net.Edges {
		if e.Declared {
			s.DeclaredEdges++
		} else {
			s.OneSidedEdges++
		}
	}

	ids := net.EntityIDs()
	for _, id := range ids {
		s.CategoryCounts[net.Entities[id].CategoryName]++
		if net.Entities[id].ConnectionCount == 0 {
			s.IsolatedCount++
		}
	}

	if len(ids) > 0 {
		uf := newUnionFind(ids)
		for _, e := range net.Edges {
			uf.union(e.Source, e.Target)
		}
		sizes := uf.componentSizes()
		s.NumComponents = len(sizes)
		for _, sz := range sizes {
			if sz > s.LargestComp {
				s.LargestComp = sz
			}
		}
	}

	// Hubs by classified degree, one pass over the edge list
	degree := make(map[string]int, len(ids))
	declared := make(map[string]int, len(ids))
	for _, e := range net.Edges {
		degree[e.Source]++
		degree[e.Target]++
		if e.Declared {
			declared[e.Source]++
			declared[e.Target]++
		}
	}
	var hubs []HubEntity
	for _, id := range ids {
		ent := net.Entities[id]
		hubs = append(hubs, HubEntity{
			ID:       id,
			Label:    ent.Label,
			Category: ent.CategoryName,
			Degree:   degree[id],
			Declared: declared[id],
		})
	}
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}
	s.Hubs = hubs
	return s
}
