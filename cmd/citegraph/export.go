package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/config"
	"citegraph/internal/storage"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination file (default .citegraph/graph.jsonl)")
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the graph to a JSONL snapshot",
	Long: `Write every node to a JSONL file, one node per line.

The snapshot is a portable copy of the graph: positions, z-order,
citations, and timestamps all survive an export/import round trip.`,
	RunE: runExport,
}

// ExportResult is the JSON output for export/import.
type ExportResult struct {
	Path  string `json:"path"`
	Nodes int    `json:"nodes"`
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	nodes, err := db.ListNodes()
	if err != nil {
		exitWithError(ExitError, "reading nodes: %v", err)
	}

	path := exportOutput
	if path == "" {
		path = config.GraphPath(repoRoot)
	}
	if err := storage.WriteAllNodes(path, nodes); err != nil {
		exitWithError(ExitError, "writing %s: %v", path, err)
	}

	res := ExportResult{Path: path, Nodes: len(nodes)}
	if humanOutput {
		fmt.Printf("Exported %d node(s) to %s\n", res.Nodes, res.Path)
	} else {
		outputJSON(res)
	}
	return nil
}
