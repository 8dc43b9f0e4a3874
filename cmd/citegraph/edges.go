package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/graph"
)

func init() {
	rootCmd.AddCommand(edgesCmd)
}

var edgesCmd = &cobra.Command{
	Use:   "edges [id]",
	Short: "Show citation edges",
	Long: `Show the citation edges of the graph.

Without arguments, lists every materialized edge. With an id, lists that
paper's outgoing edges plus its latent citations: identifiers extracted
from its document whose papers are not in the graph yet. Latent entries
show a title when citation metadata resolved at add time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdges,
}

// LatentCitation is a not-yet-materialized citation in JSON output.
type LatentCitation struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// EdgesResult is the JSON output for the edges command.
type EdgesResult struct {
	Edges  []graph.Edge     `json:"edges"`
	Latent []LatentCitation `json:"latent,omitempty"`
}

func runEdges(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	nodes, err := db.ListNodes()
	if err != nil {
		exitWithError(ExitError, "listing nodes: %v", err)
	}

	var result EdgesResult
	all := graph.Edges(nodes)

	if len(args) == 0 {
		result.Edges = all
	} else {
		id := normalizeID(args[0])
		node, err := db.GetNode(id)
		if err != nil {
			exitWithError(ExitError, "retrieving node: %v", err)
		}
		if node == nil {
			exitWithError(ExitError, "paper %s not in graph", id)
		}

		for _, e := range all {
			if e.From == node.Paper.ID {
				result.Edges = append(result.Edges, e)
			}
		}

		// Resolved citation metadata gives latent ids a title.
		titles := make(map[string]string, len(node.Citations))
		for _, c := range node.Citations {
			titles[c.ID] = c.Title
		}
		for _, id := range graph.Latent(*node, nodes) {
			result.Latent = append(result.Latent, LatentCitation{ID: id, Title: titles[id]})
		}
	}

	if humanOutput {
		printEdgesHuman(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func printEdgesHuman(r EdgesResult) {
	for _, e := range r.Edges {
		fmt.Printf("%s -> %s\n", e.From, e.To)
	}
	if len(r.Latent) > 0 {
		fmt.Printf("\nLatent citations (add with 'citegraph add <id>'):\n")
		for _, l := range r.Latent {
			if l.Title != "" {
				fmt.Printf("  %s  %s\n", l.ID, truncateString(l.Title, ListTitleMaxLen))
			} else {
				fmt.Printf("  %s\n", l.ID)
			}
		}
	}
}
