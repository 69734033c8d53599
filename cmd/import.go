package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/snapshot"
	"causenet/atlas/internal/store"
)

var importOut string

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Import a snapshot JSON file into a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}

		st, err := store.Open(importOut)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ImportSnapshot(snap); err != nil {
			return fmt.Errorf("importing snapshot: %w", err)
		}

		fmt.Printf("imported %d nodes into %s\n", len(snap.Nodes), importOut)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importOut, "out", ".atlas.db", "Output database path")
	rootCmd.AddCommand(importCmd)
}
