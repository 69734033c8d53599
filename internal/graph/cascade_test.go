package graph

import (
	"fmt"
	"testing"
)

func cascadeFixture(causes map[string][]string, ids ...string) (*AdjacencyIndex, *Network) {
	net := quickNetwork(ids, causes)
	return BuildAdjacency(net), net
}

func TestCascade_MissingRootIsNil(t *testing.T) {
	idx, net := cascadeFixture(map[string][]string{"A": {"B"}}, "A", "B")
	if got := BuildCascade(idx, net, "NOPE", DirectionForward, DefaultCascadeConfig(), nil); got != nil {
		t.Errorf("missing root should yield nil, got %+v", got)
	}
	if got := BuildBidirectional(idx, net, "NOPE", DefaultCascadeConfig()); got != nil {
		t.Errorf("missing root should yield nil bidirectional, got %+v", got)
	}
}

func TestCascade_CycleBecomesGhost(t *testing.T) {
	idx, net := cascadeFixture(map[string][]string{
		"A": {"B"}, "B": {"C"}, "C": {"A"},
	}, "A", "B", "C")

	tree := BuildCascade(idx, net, "A", DirectionForward, CascadeConfig{MaxDepth: 10, MaxFanout: 10}, nil)
	// A -> B -> C -> A(ghost)
	b := tree.Children[0]
	c := b.Children[0]
	ghost := c.Children[0]
	if ghost.ID != "A" || !ghost.Ghost {
		t.Fatalf("cycle re-entry should ghost, got %+v", ghost)
	}
	if len(ghost.Children) != 0 {
		t.Errorf("ghost must not expand, got %d children", len(ghost.Children))
	}
}

func TestCascade_NoNonGhostRepeatsOnPath(t *testing.T) {
	idx, net := cascadeFixture(map[string][]string{
		"A": {"B", "C"}, "B": {"C"}, "C": {"A", "B"},
	}, "A", "B", "C")
	tree := BuildCascade(idx, net, "A", DirectionForward, CascadeConfig{MaxDepth: 8, MaxFanout: 8}, nil)

	var walk func(n *CascadeNode, path map[string]bool)
	walk = func(n *CascadeNode, path map[string]bool) {
		if path[n.ID] && !n.Ghost {
			t.Errorf("non-ghost %s repeats on its own path", n.ID)
		}
		if n.Ghost {
			return
		}
		path[n.ID] = true
		for _, c := range n.Children {
			walk(c, path)
		}
		delete(path, n.ID)
	}
	walk(tree, map[string]bool{})
}

func TestCascade_DepthBoundaryIsNotGhost(t *testing.T) {
	idx, net := cascadeFixture(map[string][]string{"A": {"B"}, "B": {"C"}}, "A", "B", "C")
	tree := BuildCascade(idx, net, "A", DirectionForward, CascadeConfig{MaxDepth: 1, MaxFanout: 10}, nil)
	b := tree.Children[0]
	if b.Ghost {
		t.Error("depth exhaustion must not mark a ghost")
	}
	if len(b.Children) != 0 {
		t.Errorf("depth-exhausted node must not expand, got %d children", len(b.Children))
	}
	if b.TotalChildren != 1 {
		t.Errorf("depth-exhausted node should still report its true child count, got %d", b.TotalChildren)
	}
}

func TestCascade_TruncationCounts(t *testing.T) {
	causes := map[string][]string{}
	ids := []string{"root"}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("n%d", i)
		ids = append(ids, id)
		causes["root"] = append(causes["root"], id)
	}
	idx, net := cascadeFixture(causes, ids...)

	tree := BuildCascade(idx, net, "root", DirectionForward, CascadeConfig{MaxDepth: 2, MaxFanout: 4}, nil)
	if len(tree.Children) != 4 {
		t.Errorf("fan-out cap 4 should keep 4 children, got %d", len(tree.Children))
	}
	if tree.Truncated != 6 {
		t.Errorf("expected truncated=6, got %d", tree.Truncated)
	}
	if tree.TotalChildren != 10 {
		t.Errorf("expected total_children=10, got %d", tree.TotalChildren)
	}
}

func TestCascade_ReverseDirection(t *testing.T) {
	idx, net := cascadeFixture(map[string][]string{"A": {"C"}, "B": {"C"}}, "A", "B", "C")
	tree := BuildCascade(idx, net, "C", DirectionReverse, DefaultCascadeConfig(), nil)
	if len(tree.Children) != 2 {
		t.Fatalf("C should have 2 triggers, got %d", len(tree.Children))
	}
}

func TestBidirectional_IndependentVisitedSets(t *testing.T) {
	// B sits both upstream and downstream of A; it must appear un-ghosted
	// on both sides because each direction has its own visited set
	idx, net := cascadeFixture(map[string][]string{"A": {"B"}, "B": {"A"}}, "A", "B")
	cascade := BuildBidirectional(idx, net, "A", CascadeConfig{MaxDepth: 1, MaxFanout: 10})

	if cascade.Effects == nil || cascade.Triggers == nil {
		t.Fatal("both directions should build")
	}
	eff := cascade.Effects.Children[0]
	trig := cascade.Triggers.Children[0]
	if eff.ID != "B" || trig.ID != "B" {
		t.Fatalf("B should appear on both sides, got %s / %s", eff.ID, trig.ID)
	}
	if eff.Ghost || trig.Ghost {
		t.Error("a node reached once per direction must not ghost")
	}
}

func TestBidirectional_RootReentryGhosts(t *testing.T) {
	// A -> B -> A: the seeded root ghosts when a cycle returns to it
	idx, net := cascadeFixture(map[string][]string{"A": {"B"}, "B": {"A"}}, "A", "B")
	cascade := BuildBidirectional(idx, net, "A", CascadeConfig{MaxDepth: 5, MaxFanout: 10})
	b := cascade.Effects.Children[0]
	back := b.Children[0]
	if back.ID != "A" || !back.Ghost {
		t.Errorf("re-entry to the seeded root should ghost, got %+v", back)
	}
}
