package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/graph"
)

var (
	classifyJSON bool
	classifyTopN int
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify edges and summarize the causal network",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := LoadNetwork()
		if err != nil {
			return err
		}

		summary := graph.Summarize(net, classifyTopN)

		if classifyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		printSummary(summary)
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output as JSON")
	classifyCmd.Flags().IntVar(&classifyTopN, "top-n", 10, "Number of hubs to show")
	rootCmd.AddCommand(classifyCmd)
}

func printSummary(s *graph.Summary) {
	fmt.Printf("\n  CLASSIFICATION\n")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Entities: %d  Edges: %d\n", s.TotalEntities, s.TotalEdges)
	declaredShare := 0.0
	if s.TotalEdges > 0 {
		declaredShare = float64(s.DeclaredEdges) / float64(s.TotalEdges) * 100
	}
	fmt.Printf("  Declared: %d (%.0f%%)  One-sided: %d\n", s.DeclaredEdges, declaredShare, s.OneSidedEdges)
	if s.DanglingRefs > 0 {
		fmt.Printf("  Dangling declarations dropped: %d\n", s.DanglingRefs)
	}
	fmt.Printf("  Components: %d (largest %d)  Isolated: %d\n", s.NumComponents, s.LargestComp, s.IsolatedCount)

	if len(s.CategoryCounts) > 0 {
		fmt.Println("\n  Categories:")
		names := make([]string, 0, len(s.CategoryCounts))
		for name := range s.CategoryCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %-16s %4d\n", name, s.CategoryCounts[name])
		}
	}

	if len(s.Hubs) > 0 {
		fmt.Println("\n  Top hubs by classified degree:")
		for _, hub := range s.Hubs {
			fmt.Printf("    %-8s degree=%-3d declared=%-3d [%s]  %s\n",
				hub.ID, hub.Degree, hub.Declared, hub.Category, truncLabel(hub.Label, 40))
		}
	}
	fmt.Println()
}

func truncLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
