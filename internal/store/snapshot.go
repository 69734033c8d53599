package store

import (
	"fmt"
	"strconv"

	"causenet/atlas/internal/snapshot"
)

// ImportSnapshot replaces the stored snapshot with snap, in one transaction.
// Declaration list order is preserved so edge construction stays
// order-stable after a round trip.
func (s *Store) ImportSnapshot(snap *snapshot.Snapshot) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"declarations", "nodes", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	metaStmt, err := tx.Prepare("INSERT INTO meta (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer metaStmt.Close()
	for key, value := range map[string]string{
		"node_count": strconv.Itoa(snap.Meta.NodeCount),
		"edge_count": strconv.Itoa(snap.Meta.EdgeCount),
		"version":    snap.Meta.Version,
	} {
		if _, err := metaStmt.Exec(key, value); err != nil {
			return fmt.Errorf("writing meta: %w", err)
		}
	}

	nodeStmt, err := tx.Prepare("INSERT INTO nodes (id, label, identifier, type, cluster, position) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	declStmt, err := tx.Prepare("INSERT OR IGNORE INTO declarations (source, target, kind, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer declStmt.Close()

	for pos, n := range snap.Nodes {
		if _, err := nodeStmt.Exec(n.ID, n.Label, n.Identifier, n.TypeName, n.ClusterName, pos); err != nil {
			return fmt.Errorf("writing node %s: %w", n.ID, err)
		}
		for i, target := range n.Causes {
			if _, err := declStmt.Exec(n.ID, target, "causes", i); err != nil {
				return fmt.Errorf("writing declaration %s->%s: %w", n.ID, target, err)
			}
		}
		for i, source := range n.CausedBy {
			if _, err := declStmt.Exec(n.ID, source, "caused_by", i); err != nil {
				return fmt.Errorf("writing declaration %s<-%s: %w", n.ID, source, err)
			}
		}
	}

	return tx.Commit()
}

// LoadSnapshot reassembles the stored snapshot, nodes in import order and
// declaration lists in declared order.
func (s *Store) LoadSnapshot() (*snapshot.Snapshot, error) {
	snap := &snapshot.Snapshot{}

	metaRows, err := s.conn.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var key, value string
		if err := metaRows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case "node_count":
			snap.Meta.NodeCount, _ = strconv.Atoi(value)
		case "edge_count":
			snap.Meta.EdgeCount, _ = strconv.Atoi(value)
		case "version":
			snap.Meta.Version = value
		}
	}
	if err := metaRows.Err(); err != nil {
		return nil, err
	}

	nodeRows, err := s.conn.Query("SELECT id, label, identifier, type, cluster FROM nodes ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer nodeRows.Close()

	index := make(map[string]int)
	for nodeRows.Next() {
		var n snapshot.Node
		if err := nodeRows.Scan(&n.ID, &n.Label, &n.Identifier, &n.TypeName, &n.ClusterName); err != nil {
			return nil, err
		}
		index[n.ID] = len(snap.Nodes)
		snap.Nodes = append(snap.Nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, err
	}

	declRows, err := s.conn.Query("SELECT source, target, kind FROM declarations ORDER BY source, kind, position")
	if err != nil {
		return nil, err
	}
	defer declRows.Close()
	for declRows.Next() {
		var source, target, kind string
		if err := declRows.Scan(&source, &target, &kind); err != nil {
			return nil, err
		}
		i, ok := index[source]
		if !ok {
			continue
		}
		if kind == "causes" {
			snap.Nodes[i].Causes = append(snap.Nodes[i].Causes, target)
		} else {
			snap.Nodes[i].CausedBy = append(snap.Nodes[i].CausedBy, target)
		}
	}
	return snap, declRows.Err()
}
