package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"citegraph/internal/arxiv"
	"citegraph/internal/config"
	"citegraph/internal/doccache"
	"citegraph/internal/extract"
	"citegraph/internal/graph"
)

var (
	addX float64
	addY float64
)

func init() {
	addCmd.Flags().Float64Var(&addX, "x", 0, "Canvas x position for new nodes")
	addCmd.Flags().Float64Var(&addY, "y", 0, "Canvas y position for new nodes")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <identifier>...",
	Short: "Add papers to the graph by arXiv identifier or URL",
	Long: `Add papers to the graph.

Each identifier is resolved to metadata, its PDF downloaded and cached,
the PDF text scanned for cited arXiv identifiers, and the paper merged
into the graph. A paper whose PDF cannot be fetched or whose citations
cannot be resolved is still added, just without that enrichment.
Re-adding a paper already in the graph is a no-op.

Accepted identifier forms:
  https://arxiv.org/abs/2406.11944
  arXiv:2406.11944v2
  2406.11944
  math.GT/0309136

Examples:
  citegraph add 2406.11944
  citegraph add https://arxiv.org/abs/2406.11944 1901.00001 --x 120 --y -40`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// AddResult is the JSON output per input identifier.
type AddResult struct {
	Input             string `json:"input"`
	ID                string `json:"id,omitempty"`
	Title             string `json:"title,omitempty"`
	Created           bool   `json:"created"`
	CitationsFound    int    `json:"citations_found"`
	CitationsResolved int    `json:"citations_resolved"`
	Degraded          string `json:"degraded,omitempty"`
	Error             string `json:"error,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDB(repoRoot)
	defer db.Close()

	assembler := graph.NewAssembler(
		arxiv.NewClient(),
		doccache.New(config.DocsPath(repoRoot, cfg)),
		extract.Citations,
		db,
	)

	outcomes := assembler.AddPapers(cmd.Context(), args, graph.Origin{X: addX, Y: addY})

	results := make([]AddResult, len(outcomes))
	failed := 0
	invalidOnly := true
	for i, o := range outcomes {
		r := AddResult{Input: o.Raw}
		if o.Err != nil {
			failed++
			r.Error = o.Err.Error()
			if !errors.Is(o.Err, arxiv.ErrInvalidIdentifier) {
				invalidOnly = false
			}
		} else {
			r.ID = o.Node.Paper.ID
			r.Title = o.Node.Paper.Title
			r.Created = o.Created
			r.CitationsFound = len(o.Node.RawCitationIDs)
			r.CitationsResolved = o.ResolvedCitations
			r.Degraded = o.Degraded
		}
		results[i] = r
	}

	if humanOutput {
		printAddResultsHuman(results)
	} else {
		outputJSON(results)
	}

	// Partial success is success; only a batch with zero added papers
	// reports a failure exit code.
	if failed == len(outcomes) {
		if invalidOnly {
			os.Exit(ExitInvalidID)
		}
		os.Exit(ExitRemoteError)
	}
	return nil
}

func printAddResultsHuman(results []AddResult) {
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Printf("✗ %s: %s\n", r.Input, r.Error)
		case !r.Created:
			fmt.Printf("- %s already in graph\n", r.ID)
		default:
			fmt.Printf("✓ %s  %s\n", r.ID, truncateString(r.Title, ListTitleMaxLen))
			fmt.Printf("  citations: %d extracted, %d resolved", r.CitationsFound, r.CitationsResolved)
			if r.Degraded != "" {
				fmt.Printf(" (%s)", r.Degraded)
			}
			fmt.Println()
		}
	}
}
