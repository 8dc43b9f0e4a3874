package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a paper from the graph",
	Long: `Remove a paper node from the graph.

Incident edges are implied by citation data and disappear with the
node. The cached document is kept; other papers may cite it and a
re-add should not re-download.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	id := normalizeID(args[0])
	removed, err := db.DeleteNode(id)
	if err != nil {
		exitWithError(ExitError, "removing node: %v", err)
	}
	if !removed {
		exitWithError(ExitError, "paper %s not in graph", id)
	}

	if humanOutput {
		fmt.Printf("Removed %s\n", id)
	} else {
		outputJSON(StatusResponse{Status: "removed"})
	}
	return nil
}
