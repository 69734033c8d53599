package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/graph"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <entity>",
	Short: "Show an entity's declaration and classification breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := LoadNetwork()
		if err != nil {
			return err
		}
		ent, err := ResolveEntity(net, args[0])
		if err != nil {
			return err
		}

		degree := net.Degree(ent.ID)
		declared, oneSidedIn, oneSidedOut := 0, 0, 0
		for _, e := range net.Edges {
			if e.Source != ent.ID && e.Target != ent.ID {
				continue
			}
			if e.Declared {
				declared++
			} else if e.Target == ent.ID {
				oneSidedIn++
			} else {
				oneSidedOut++
			}
		}

		fmt.Printf("\n  %s  %s\n", ent.ID, ent.Label)
		fmt.Printf("  category: %s / %s\n", ent.CategoryName, ent.Subcategory)
		fmt.Printf("  declarations: %d causes, %d caused-by (connection count %d)\n",
			len(ent.Causes), len(ent.CausedBy), ent.ConnectionCount)
		fmt.Printf("  classified degree: %d\n", degree)
		fmt.Printf("    declared:        %d\n", declared)
		fmt.Printf("    one-sided in:    %d\n", oneSidedIn)
		fmt.Printf("    one-sided out:   %d\n", oneSidedOut)

		idx := graph.BuildAdjacency(net)
		if effects := idx.Forward[ent.ID]; len(effects) > 0 {
			fmt.Println("\n  top effects:")
			printNeighbors(net, effects, 5)
		}
		if triggers := idx.Reverse[ent.ID]; len(triggers) > 0 {
			fmt.Println("\n  top triggers:")
			printNeighbors(net, triggers, 5)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printNeighbors(net *graph.Network, neighbors []graph.Neighbor, limit int) {
	if len(neighbors) < limit {
		limit = len(neighbors)
	}
	for _, nb := range neighbors[:limit] {
		label := "?"
		if e, ok := net.Entities[nb.ID]; ok {
			label = truncLabel(e.Label, 40)
		}
		attested := "one-sided"
		if nb.Declared {
			attested = "declared"
		}
		fmt.Printf("    %-8s %-9s %s\n", nb.ID, attested, label)
	}
}
