package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/graph"
	"causenet/atlas/internal/layout"
)

var (
	hierarchyTension float64
	hierarchyHide    []string
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Compute the hierarchical radial bundling layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if hierarchyTension < 0 || hierarchyTension > 1 {
			return fmt.Errorf("tension must be in [0,1], got %v", hierarchyTension)
		}
		net, err := LoadNetwork()
		if err != nil {
			return err
		}
		net = net.FilterCategories(hiddenSet(hierarchyHide))

		result := layout.BuildHierarchy(net, net.Edges, hierarchyTension, layout.DefaultHierarchyConfig())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	hierarchyCmd.Flags().Float64Var(&hierarchyTension, "tension", 0.85, "Bundling tension in [0,1]")
	hierarchyCmd.Flags().StringSliceVar(&hierarchyHide, "hide", nil, "Category names to hide")
	rootCmd.AddCommand(hierarchyCmd)
}

func hiddenSet(names []string) map[graph.Category]bool {
	hidden := make(map[graph.Category]bool)
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			hidden[graph.ResolveCategory(name)] = true
		}
	}
	return hidden
}
