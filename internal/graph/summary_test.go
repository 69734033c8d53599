package graph

import "testing"

func TestSummarize_Counts(t *testing.T) {
	net := makeNetwork([]entitySpec{
		{id: "A", cat: CategoryTechnological, sub: "s", causes: []string{"B", "C"}},
		{id: "B", cat: CategorySocietal, sub: "s", causedBy: []string{"A"}},
		{id: "C", cat: CategorySocietal, sub: "s"},
		{id: "D", cat: CategoryEconomic, sub: "s"}, // isolated
	})
	s := Summarize(net, 10)

	if s.TotalEntities != 4 || s.TotalEdges != 2 {
		t.Errorf("got %d entities / %d edges", s.TotalEntities, s.TotalEdges)
	}
	if s.DeclaredEdges != 1 || s.OneSidedEdges != 1 {
		t.Errorf("got declared=%d one-sided=%d", s.DeclaredEdges, s.OneSidedEdges)
	}
	if s.IsolatedCount != 1 {
		t.Errorf("expected 1 isolated entity, got %d", s.IsolatedCount)
	}
	if s.NumComponents != 2 {
		t.Errorf("expected 2 components, got %d", s.NumComponents)
	}
	if s.LargestComp != 3 {
		t.Errorf("expected largest component 3, got %d", s.LargestComp)
	}
	if s.CategoryCounts["Societal"] != 2 {
		t.Errorf("expected 2 societal entities, got %d", s.CategoryCounts["Societal"])
	}
}

func TestSummarize_HubsSortedAndCapped(t *testing.T) {
	net := quickNetwork([]string{"hub", "a", "b", "c"}, map[string][]string{
		"hub": {"a", "b", "c"},
		"a":   {"b"},
	})
	s := Summarize(net, 2)
	if len(s.Hubs) != 2 {
		t.Fatalf("expected 2 hubs, got %d", len(s.Hubs))
	}
	if s.Hubs[0].ID != "hub" {
		t.Errorf("hub should rank first, got %s", s.Hubs[0].ID)
	}
	if s.Hubs[0].Degree != 3 {
		t.Errorf("hub degree should be 3, got %d", s.Hubs[0].Degree)
	}
}

func TestSummarize_EmptyNetwork(t *testing.T) {
	s := Summarize(NewNetwork(nil), 10)
	if s.TotalEntities != 0 || s.NumComponents != 0 {
		t.Errorf("empty network should summarize to zeros, got %+v", s)
	}
}
