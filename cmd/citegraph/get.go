package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/graph"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a paper node in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// NodeDetail is the JSON output for the get command.
type NodeDetail struct {
	graph.Node
	Edges  []string `json:"edges,omitempty"`  // Materialized outgoing edges
	Latent []string `json:"latent,omitempty"` // Extracted ids not yet in the graph
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	id := normalizeID(args[0])
	node, err := db.GetNode(id)
	if err != nil {
		exitWithError(ExitError, "retrieving node: %v", err)
	}
	if node == nil {
		exitWithError(ExitError, "paper %s not in graph", id)
	}

	nodes, err := db.ListNodes()
	if err != nil {
		exitWithError(ExitError, "listing nodes: %v", err)
	}

	detail := NodeDetail{
		Node:   *node,
		Latent: graph.Latent(*node, nodes),
	}
	for _, e := range graph.Edges(nodes) {
		if e.From == node.Paper.ID {
			detail.Edges = append(detail.Edges, e.To)
		}
	}

	if humanOutput {
		printNodeDetailHuman(detail)
	} else {
		outputJSON(detail)
	}
	return nil
}

func printNodeDetailHuman(d NodeDetail) {
	p := d.Paper
	fmt.Printf("%s  %s\n", p.ID, truncateString(p.Title, DetailTitleMaxLen))
	fmt.Printf("  %s (%d)\n", formatAuthorsShort(p.Authors, 3), p.Published.Year())
	fmt.Printf("  position: (%.0f, %.0f)  z: %d\n", d.X, d.Y, d.ZOrder)
	fmt.Printf("  %s\n", p.AbsURL())
	if len(d.Edges) > 0 {
		fmt.Printf("  cites (in graph): %d\n", len(d.Edges))
		for _, id := range d.Edges {
			fmt.Printf("    → %s\n", id)
		}
	}
	if len(d.Latent) > 0 {
		fmt.Printf("  cites (latent): %d\n", len(d.Latent))
	}
}
