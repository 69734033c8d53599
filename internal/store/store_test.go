package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"causenet/atlas/internal/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Meta: snapshot.Meta{NodeCount: 3, EdgeCount: 2, Version: "2026-08"},
		Nodes: []snapshot.Node{
			{
				ID: "TL0405", Label: "Power grid failure", Identifier: "tl-0405",
				TypeName: "Technological", ClusterName: "grid",
				Causes:   []string{"SO0101", "TL0101"},
				CausedBy: []string{"GE0202"},
			},
			{
				ID: "SO0101", Label: "Civil unrest", TypeName: "Societal", ClusterName: "civil",
				CausedBy: []string{"TL0405"},
			},
			{
				ID: "GE0202", Label: "Earthquake", TypeName: "Geophysical", ClusterName: "seismic",
				Causes: []string{"TL0405"},
			},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "atlas.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := testSnapshot()

	if err := s.ImportSnapshot(want); err != nil {
		t.Fatalf("importing: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	if got.Meta != want.Meta {
		t.Errorf("meta mismatch: got %+v, want %+v", got.Meta, want.Meta)
	}
	if len(got.Nodes) != len(want.Nodes) {
		t.Fatalf("node count mismatch: got %d, want %d", len(got.Nodes), len(want.Nodes))
	}
	for i := range want.Nodes {
		if !reflect.DeepEqual(got.Nodes[i], want.Nodes[i]) {
			t.Errorf("node %d mismatch:\n got  %+v\n want %+v", i, got.Nodes[i], want.Nodes[i])
		}
	}
}

func TestStore_NodeOrderPreserved(t *testing.T) {
	s := openTestStore(t)
	if err := s.ImportSnapshot(testSnapshot()); err != nil {
		t.Fatalf("importing: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	want := []string{"TL0405", "SO0101", "GE0202"}
	for i, id := range want {
		if got.Nodes[i].ID != id {
			t.Errorf("node %d: got %s, want %s", i, got.Nodes[i].ID, id)
		}
	}
}

func TestStore_ReimportReplaces(t *testing.T) {
	s := openTestStore(t)
	if err := s.ImportSnapshot(testSnapshot()); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := &snapshot.Snapshot{
		Meta: snapshot.Meta{NodeCount: 1, EdgeCount: 0},
		Nodes: []snapshot.Node{
			{ID: "EC0001", Label: "Market crash", TypeName: "Economic", ClusterName: "finance"},
		},
	}
	if err := s.ImportSnapshot(second); err != nil {
		t.Fatalf("second import: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "EC0001" {
		t.Errorf("re-import should fully replace the snapshot, got %+v", got.Nodes)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := s.ImportSnapshot(testSnapshot()); err != nil {
		t.Fatalf("importing: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.LoadSnapshot()
	if err != nil {
		t.Fatalf("loading after reopen: %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Errorf("expected 3 nodes after reopen, got %d", len(got.Nodes))
	}
}
