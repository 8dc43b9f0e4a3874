package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all papers in the graph",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	nodes, err := db.ListNodes()
	if err != nil {
		exitWithError(ExitError, "listing nodes: %v", err)
	}

	if humanOutput {
		for _, n := range nodes {
			fmt.Printf("%s  (%.0f, %.0f)  %s\n", n.Paper.ID, n.X, n.Y,
				truncateString(n.Paper.Title, ListTitleMaxLen))
		}
		fmt.Printf("%d papers\n", len(nodes))
	} else {
		outputJSON(nodes)
	}
	return nil
}
