package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/config"
	"citegraph/internal/doccache"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(printCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Ensure a paper's PDF is cached locally",
	Long: `Ensure a paper's PDF is in the local document cache.

A paper already cached costs no network access. Prints the local path.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

// FetchResult is the JSON output for fetch/open.
type FetchResult struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// ensureDocument looks up the node and makes its document local,
// exiting on failure. Shared by fetch, open, and print.
func ensureDocument(cmd *cobra.Command, repoRoot string, cfg *config.Config, id string) FetchResult {
	db := mustOpenDB(repoRoot)
	defer db.Close()

	node, err := db.GetNode(id)
	if err != nil {
		exitWithError(ExitError, "retrieving node: %v", err)
	}
	if node == nil {
		exitWithError(ExitError, "paper %s not in graph", id)
	}

	store := doccache.New(config.DocsPath(repoRoot, cfg))
	path, err := store.EnsureLocal(cmd.Context(), node.Paper)
	if err != nil {
		exitWithError(ExitRemoteError, "fetching document for %s: %v", id, err)
	}

	return FetchResult{ID: node.Paper.ID, Path: path}
}

func runFetch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	res := ensureDocument(cmd, repoRoot, cfg, normalizeID(args[0]))

	if humanOutput {
		fmt.Println(res.Path)
	} else {
		outputJSON(res)
	}
	return nil
}
