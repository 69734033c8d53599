package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
)

// Meta describes a snapshot version
type Meta struct {
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
	Version   string `json:"version,omitempty"`
}

// Node is one entity as declared by the source dataset. Causes and CausedBy
// are the entity's own outgoing and incoming declarations; the two lists are
// not guaranteed to be mutually consistent.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Identifier  string   `json:"identifier,omitempty"`
	TypeName    string   `json:"typeName"`
	ClusterName string   `json:"clusterName"`
	Causes      []string `json:"causes"`
	CausedBy    []string `json:"causedBy"`
}

// Edge is a raw, unclassified edge as shipped in the snapshot file. Edges are
// re-derived from node declarations at ingestion, so this list is advisory.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Snapshot is the raw dataset shape consumed read-only by the core
type Snapshot struct {
	Meta  Meta   `json:"meta"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges,omitempty"`
}

// Load reads and parses a snapshot JSON file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}
