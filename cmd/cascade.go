package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"causenet/atlas/internal/graph"
)

var (
	cascadeJSON      bool
	cascadeDirection string
	cascadeDepth     int
	cascadeFanout    int
)

var cascadeCmd = &cobra.Command{
	Use:   "cascade <entity>",
	Short: "Expand the causal cascade tree from an entity",
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

		idx := graph.BuildAdjacency(net)
		cfg := graph.CascadeConfig{MaxDepth: cascadeDepth, MaxFanout: cascadeFanout}

		switch cascadeDirection {
		case "forward", "reverse":
			tree := graph.BuildCascade(idx, net, ent.ID, graph.Direction(cascadeDirection), cfg, nil)
			if tree == nil {
				fmt.Println("nothing to show")
				return nil
			}
			if cascadeJSON {
				return encodeJSON(tree)
			}
			printCascade(tree, "", true)
		case "both":
			cascade := graph.BuildBidirectional(idx, net, ent.ID, cfg)
			if cascade == nil {
				fmt.Println("nothing to show")
				return nil
			}
			if cascadeJSON {
				return encodeJSON(cascade)
			}
			fmt.Printf("\n  TRIGGERS (what causes %s)\n", ent.Label)
			printCascade(cascade.Triggers, "  ", true)
			fmt.Printf("\n  EFFECTS (what %s causes)\n", ent.Label)
			printCascade(cascade.Effects, "  ", true)
		default:
			return fmt.Errorf("direction must be forward, reverse, or both, got %q", cascadeDirection)
		}
		return nil
	},
}

func init() {
	cascadeCmd.Flags().BoolVar(&cascadeJSON, "json", false, "Output as JSON")
	cascadeCmd.Flags().StringVar(&cascadeDirection, "direction", "both", "Expansion direction: forward, reverse, or both")
	cascadeCmd.Flags().IntVar(&cascadeDepth, "depth", graph.DefaultCascadeConfig().MaxDepth, "Maximum expansion depth")
	cascadeCmd.Flags().IntVar(&cascadeFanout, "fanout", graph.DefaultCascadeConfig().MaxFanout, "Maximum children per node")
	rootCmd.AddCommand(cascadeCmd)
}

func encodeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCascade(node *graph.CascadeNode, prefix string, last bool) {
	if node == nil {
		return
	}
	connector := "├─ "
	childPrefix := prefix + "│  "
	if last {
		connector = "└─ "
		childPrefix = prefix + "   "
	}
	marker := ""
	if node.Ghost {
		marker = " (seen)"
	}
	fmt.Printf("%s%s%s  %s [%s]%s\n", prefix, connector, node.ID, truncLabel(node.Label, 44), node.Category, marker)
	for i, child := range node.Children {
		printCascade(child, childPrefix, i == len(node.Children)-1 && node.Truncated == 0)
	}
	if node.Truncated > 0 {
		fmt.Printf("%s└─ ... %d more\n", childPrefix, node.Truncated)
	}
}
