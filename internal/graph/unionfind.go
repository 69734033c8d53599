package graph

// unionFind tracks connected components over entity IDs, with union by size
// and path halving.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		size:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.size[id] = 1
	}
	return uf
}

func (uf *unionFind) find(id string) string {
	cur, ok := uf.parent[id]
	if !ok {
		return id
	}
	for cur != uf.parent[cur] {
		uf.parent[cur] = uf.parent[uf.parent[cur]]
		cur = uf.parent[cur]
	}
	return cur
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// componentSizes returns the size of each connected component
func (uf *unionFind) componentSizes() []int {
	counts := make(map[string]int)
	for id := range uf.parent {
		counts[uf.find(id)]++
	}
	sizes := make([]int, 0, len(counts))
	for _, c := range counts {
		sizes = append(sizes, c)
	}
	return sizes
}
