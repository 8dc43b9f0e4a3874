package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/config"
	"citegraph/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the graph from a JSONL snapshot",
	Long: `Replace the entire graph with the nodes from a JSONL snapshot.

Reads .citegraph/graph.jsonl by default. Existing nodes are discarded;
the snapshot's positions and z-order are kept as-is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	path := config.GraphPath(repoRoot)
	if len(args) == 1 {
		path = args[0]
	}

	nodes, err := storage.ReadAllNodes(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	if err := db.ReplaceAll(nodes); err != nil {
		exitWithError(ExitError, "replacing graph: %v", err)
	}

	res := ExportResult{Path: path, Nodes: len(nodes)}
	if humanOutput {
		fmt.Printf("Imported %d node(s) from %s\n", res.Nodes, res.Path)
	} else {
		outputJSON(res)
	}
	return nil
}
