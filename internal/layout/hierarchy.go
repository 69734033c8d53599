package layout

import (
	"math"
	"sort"

	"causenet/atlas/internal/graph"
)

// Tree levels, root to leaf
const (
	LevelRoot = iota
	LevelCategory
	LevelSubcategory
	LevelEntity
)

// TreeNode is one node of the containment tree. Leaves carry entity IDs;
// group nodes carry synthetic IDs derived from their labels.
type TreeNode struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Level    int         `json:"level"`
	Children []*TreeNode `json:"children,omitempty"`

	parent *TreeNode
}

// Polar is an angular position on the layout circle. Angle is in degrees.
type Polar struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// Point is a cartesian position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Arc is the angular extent of a category or subcategory group
type Arc struct {
	Label  string  `json:"label"`
	Level  int     `json:"level"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Center float64 `json:"center"`
}

// EdgePath is a bundled curve for one classified edge. ControlPoints runs
// from the source leaf through the containment hierarchy to the target leaf
// and feeds a Bezier/spline renderer directly.
type EdgePath struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Declared      bool    `json:"declared"`
	ControlPoints []Point `json:"control_points"`
}

// HierarchyResult is the full output of the bundling layout
type HierarchyResult struct {
	Tree            *TreeNode        `json:"tree"`
	LeafPositions   map[string]Polar `json:"leaf_positions"`
	CategoryArcs    []Arc            `json:"category_arcs"`
	SubcategoryArcs []Arc            `json:"subcategory_arcs"`
	EdgePaths       []EdgePath       `json:"edge_paths"`
}

// HierarchyConfig holds the layout's geometric parameters
type HierarchyConfig struct {
	Radius         float64 // leaf ring radius
	SubcategoryGap float64 // separation multiplier across a subcategory boundary
	CategoryGap    float64 // separation multiplier across a category boundary
}

// DefaultHierarchyConfig returns sensible defaults
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{Radius: 240, SubcategoryGap: 2.5, CategoryGap: 4}
}

// BuildHierarchy computes the containment tree, radial leaf positions, group
// arcs, and bundled edge paths for a filtered network. Tension in [0,1]
// controls how tightly paths hug the hierarchy backbone: 0 is a near-straight
// chord, 1 follows the tree exactly.
func BuildHierarchy(net *graph.Network, edges []graph.CausalEdge, tension float64, cfg HierarchyConfig) *HierarchyResult {
	tension = clamp(tension, 0, 1)
	tree, leaves := buildContainmentTree(net)
	res := &HierarchyResult{
		Tree:          tree,
		LeafPositions: make(map[string]Polar, len(leaves)),
	}
	if len(leaves) == 0 {
		return res
	}

	angles := allocateAngles(leaves, cfg)
	for i, leaf := range leaves {
		res.LeafPositions[leaf.ID] = Polar{Angle: angles[i], Radius: cfg.Radius}
	}

	res.CategoryArcs, res.SubcategoryArcs = groupArcs(tree, res.LeafPositions, len(leaves))
	res.EdgePaths = bundleEdges(edges, leaves, res.LeafPositions, tension, cfg.Radius)
	return res
}

// buildContainmentTree groups entities root -> category -> subcategory ->
// entity. Categories follow the curated order, subcategories sort
// alphabetically, entities sort by connection count descending (ID ascending
// on ties). Groups with no remaining members are omitted entirely.
func buildContainmentTree(net *graph.Network) (*TreeNode, []*TreeNode) {
	root := &TreeNode{ID: "root", Label: "root", Level: LevelRoot}

	byCategory := make(map[graph.Category]map[string][]*graph.Entity)
	for _, id := range net.Order {
		e := net.Entities[id]
		if byCategory[e.Category] == nil {
			byCategory[e.Category] = make(map[string][]*graph.Entity)
		}
		byCategory[e.Category][e.Subcategory] = append(byCategory[e.Category][e.Subcategory], e)
	}

	var leaves []*TreeNode
	for _, cat := range graph.CuratedOrder() {
		subcats := byCategory[cat]
		if len(subcats) == 0 {
			continue
		}
		catNode := &TreeNode{
			ID:     "category:" + cat.String(),
			Label:  cat.String(),
			Level:  LevelCategory,
			parent: root,
		}

		names := make([]string, 0, len(subcats))
		for name := range subcats {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			members := subcats[name]
			sort.SliceStable(members, func(i, j int) bool {
				if members[i].ConnectionCount != members[j].ConnectionCount {
					return members[i].ConnectionCount > members[j].ConnectionCount
				}
				return members[i].ID < members[j].ID
			})
			subNode := &TreeNode{
				ID:     "subcategory:" + cat.String() + "/" + name,
				Label:  name,
				Level:  LevelSubcategory,
				parent: catNode,
			}
			for _, m := range members {
				leaf := &TreeNode{
					ID:     m.ID,
					Label:  m.Label,
					Level:  LevelEntity,
					parent: subNode,
				}
				subNode.Children = append(subNode.Children, leaf)
				leaves = append(leaves, leaf)
			}
			catNode.Children = append(catNode.Children, subNode)
		}
		root.Children = append(root.Children, catNode)
	}
	return root, leaves
}

// allocateAngles spreads leaves around the circle with the separation
// function: unit spacing between same-subcategory siblings, a larger gap
// across a subcategory boundary, the largest across a category boundary.
// A trailing wrap gap closes the circle so the first and last category do
// not visually merge.
func allocateAngles(leaves []*TreeNode, cfg HierarchyConfig) []float64 {
	n := len(leaves)
	angles := make([]float64, n)
	if n == 1 {
		return angles
	}

	units := make([]float64, n)
	total := 0.0
	for i := 1; i < n; i++ {
		total += separation(leaves[i-1], leaves[i], cfg)
		units[i] = total
	}
	total += separation(leaves[n-1], leaves[0], cfg) // wrap gap

	for i := 0; i < n; i++ {
		angles[i] = units[i] / total * 360
	}
	return angles
}

func separation(a, b *TreeNode, cfg HierarchyConfig) float64 {
	switch {
	case a.parent == b.parent:
		return 1
	case a.parent != nil && b.parent != nil && a.parent.parent == b.parent.parent:
		return cfg.SubcategoryGap
	default:
		return cfg.CategoryGap
	}
}

// groupArcs derives category and subcategory arcs from member leaf angles,
// padded by half the average inter-leaf spacing so boundary arcs contain
// their members without overlapping neighbors.
func groupArcs(root *TreeNode, positions map[string]Polar, leafCount int) (cats, subs []Arc) {
	pad := 0.0
	if leafCount > 0 {
		pad = 180.0 / float64(leafCount)
	}
	for _, catNode := range root.Children {
		cats = append(cats, arcOf(catNode, positions, pad))
		for _, subNode := range catNode.Children {
			subs = append(subs, arcOf(subNode, positions, pad))
		}
	}
	return cats, subs
}

func arcOf(group *TreeNode, positions map[string]Polar, pad float64) Arc {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, leaf := range collectLeaves(group) {
		a := positions[leaf.ID].Angle
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return Arc{
		Label:  group.Label,
		Level:  group.Level,
		Start:  min - pad,
		End:    max + pad,
		Center: (min + max) / 2,
	}
}

func collectLeaves(node *TreeNode) []*TreeNode {
	if node.Level == LevelEntity {
		return []*TreeNode{node}
	}
	var out []*TreeNode
	for _, c := range node.Children {
		out = append(out, collectLeaves(c)...)
	}
	return out
}

// bundleEdges computes a control-point path per edge through the lowest
// common ancestor. Edges with a filtered-out endpoint are dropped before
// path computation.
func bundleEdges(edges []graph.CausalEdge, leaves []*TreeNode, positions map[string]Polar, tension, radius float64) []EdgePath {
	leafByID := make(map[string]*TreeNode, len(leaves))
	for _, l := range leaves {
		leafByID[l.ID] = l
	}

	var paths []EdgePath
	for _, e := range edges {
		src, okS := leafByID[e.Source]
		dst, okT := leafByID[e.Target]
		if !okS || !okT {
			continue
		}
		nodePath := treePath(src, dst)
		pts := make([]Point, len(nodePath))
		for i, n := range nodePath {
			pts[i] = nodePosition(n, positions, radius)
		}
		paths = append(paths, EdgePath{
			Source:        e.Source,
			Target:        e.Target,
			Declared:      e.Declared,
			ControlPoints: applyTension(pts, tension),
		})
	}
	return paths
}

// treePath walks source -> ... -> LCA -> ... -> target through the tree
func treePath(src, dst *TreeNode) []*TreeNode {
	depth := func(n *TreeNode) int {
		d := 0
		for cur := n; cur.parent != nil; cur = cur.parent {
			d++
		}
		return d
	}

	var up, down []*TreeNode
	a, b := src, dst
	da, db := depth(a), depth(b)
	for da > db {
		up = append(up, a)
		a = a.parent
		da--
	}
	for db > da {
		down = append(down, b)
		b = b.parent
		db--
	}
	for a != b {
		up = append(up, a)
		down = append(down, b)
		a = a.parent
		b = b.parent
	}
	up = append(up, a) // the LCA itself
	for i := len(down) - 1; i >= 0; i-- {
		up = append(up, down[i])
	}
	return up
}

// nodePosition maps a tree node onto the circle: leaves sit on the leaf
// ring, group nodes on inner rings at the circular mean of their member
// leaf angles, the root at the origin.
func nodePosition(n *TreeNode, positions map[string]Polar, radius float64) Point {
	if n.Level == LevelEntity {
		return toCartesian(positions[n.ID])
	}
	if n.Level == LevelRoot {
		return Point{}
	}
	var sinSum, cosSum float64
	leaves := collectLeaves(n)
	for _, leaf := range leaves {
		rad := positions[leaf.ID].Angle * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	angle := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	r := radius * float64(n.Level) / float64(LevelEntity)
	return toCartesian(Polar{Angle: angle, Radius: r})
}

// applyTension interpolates interior control points between the straight
// chord and the hierarchy backbone
func applyTension(pts []Point, tension float64) []Point {
	k := len(pts) - 1
	if k < 2 {
		return pts
	}
	out := make([]Point, len(pts))
	out[0], out[k] = pts[0], pts[k]
	for i := 1; i < k; i++ {
		t := float64(i) / float64(k)
		straight := Point{
			X: pts[0].X + (pts[k].X-pts[0].X)*t,
			Y: pts[0].Y + (pts[k].Y-pts[0].Y)*t,
		}
		out[i] = Point{
			X: straight.X*(1-tension) + pts[i].X*tension,
			Y: straight.Y*(1-tension) + pts[i].Y*tension,
		}
	}
	return out
}

func toCartesian(p Polar) Point {
	rad := p.Angle * math.Pi / 180
	return Point{X: p.Radius * math.Cos(rad), Y: p.Radius * math.Sin(rad)}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
