package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad_ValidSnapshot(t *testing.T) {
	path := writeFile(t, "snap.json", `{
		"meta": {"nodeCount": 2, "edgeCount": 1, "version": "2026-08"},
		"nodes": [
			{"id": "TL0405", "label": "Power grid failure", "identifier": "tl-0405",
			 "typeName": "Technological", "clusterName": "grid",
			 "causes": ["SO0101"], "causedBy": []},
			{"id": "SO0101", "label": "Civil unrest",
			 "typeName": "Societal", "clusterName": "civil",
			 "causes": [], "causedBy": ["TL0405"]}
		]
	}`)

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if snap.Meta.NodeCount != 2 || snap.Meta.Version != "2026-08" {
		t.Errorf("meta mismatch: %+v", snap.Meta)
	}
	if len(snap.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(snap.Nodes))
	}
	n := snap.Nodes[0]
	if n.ID != "TL0405" || n.TypeName != "Technological" || n.Identifier != "tl-0405" {
		t.Errorf("node fields mismatch: %+v", n)
	}
	if len(n.Causes) != 1 || n.Causes[0] != "SO0101" {
		t.Errorf("causes mismatch: %v", n.Causes)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "reading snapshot") {
		t.Errorf("error should say what failed, got: %v", err)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"meta": {`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing snapshot") {
		t.Errorf("error should say what failed, got: %v", err)
	}
}
