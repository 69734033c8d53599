package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/graph"
	"causenet/atlas/internal/snapshot"
	"causenet/atlas/internal/store"
)

var (
	dbPath       string
	snapshotPath string
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas causal-network classification, layout, and exploration",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to .atlas.db database")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Path to a snapshot JSON file (bypasses the database)")
}

// DiscoverDB finds the database path using priority: env > flag > walk-up
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("ATLAS_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, ".atlas.db")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", fmt.Errorf("no .atlas.db found (set ATLAS_DB, use --db, or run from a directory containing .atlas.db)")
}

// LoadNetwork loads the snapshot from --snapshot if given, otherwise from
// the discovered database, and classifies it.
func LoadNetwork() (*graph.Network, error) {
	if snapshotPath != "" {
		snap, err := snapshot.Load(snapshotPath)
		if err != nil {
			return nil, err
		}
		return graph.FromSnapshot(snap), nil
	}

	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, err := st.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return graph.FromSnapshot(snap), nil
}

// ResolveEntity finds an entity by exact ID, then by case-insensitive ID or
// label prefix. Ambiguous prefixes list their matches.
func ResolveEntity(net *graph.Network, reference string) (*graph.Entity, error) {
	if e, ok := net.Entities[reference]; ok {
		return e, nil
	}

	var matches []*graph.Entity
	for _, id := range net.EntityIDs() {
		e := net.Entities[id]
		if hasPrefixFold(e.ID, reference) || hasPrefixFold(e.Label, reference) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("entity not found: %s", reference)
	default:
		limit := 10
		if len(matches) < limit {
			limit = len(matches)
		}
		lines := ""
		for _, m := range matches[:limit] {
			lines += fmt.Sprintf("  %s  %s\n", m.ID, m.Label)
		}
		return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%sUse a full entity ID instead.",
			reference, len(matches), lines)
	}
}

func hasPrefixFold(s, prefix string) bool {
	if len(prefix) == 0 || len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
