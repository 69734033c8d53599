package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/layout"
)

var (
	orbitalDeclaredOnly bool
	orbitalHide         []string
)

var orbitalCmd = &cobra.Command{
	Use:   "orbital",
	Short: "Compute the orbital layout with corridor detection",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := LoadNetwork()
		if err != nil {
			return err
		}
		net = net.FilterCategories(hiddenSet(orbitalHide))

		edges := net.Edges
		if orbitalDeclaredOnly {
			edges = net.DeclaredOnly()
		}

		result := layout.BuildOrbital(net, edges, layout.DefaultOrbitalConfig())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	orbitalCmd.Flags().BoolVar(&orbitalDeclaredOnly, "declared-only", false, "Count only mutually attested edges")
	orbitalCmd.Flags().StringSliceVar(&orbitalHide, "hide", nil, "Category names to hide")
	rootCmd.AddCommand(orbitalCmd)
}
