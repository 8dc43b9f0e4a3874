package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"citegraph/internal/config"
	"citegraph/internal/s2"
)

var s2Cmd = &cobra.Command{
	Use:   "s2",
	Short: "Semantic Scholar (S2) discovery commands",
	Long: `Commands querying Semantic Scholar's Academic Graph API.

Find forward citations (papers that cite a node) and recommendations
for papers in the graph. Results carrying an arXiv id can be added
with 'citegraph add'.

Set S2_API_KEY (env or .env) or s2_api_key in the global config for
higher rate limits; anonymous access works too.`,
}

func init() {
	// Load .env file if present (for S2_API_KEY)
	_ = godotenv.Load()

	rootCmd.AddCommand(s2Cmd)
	s2Cmd.AddCommand(s2CitationsCmd)
	s2Cmd.AddCommand(s2RecommendCmd)

	s2CitationsCmd.Flags().IntVarP(&s2CitationsLimit, "limit", "n", 50, "Maximum results")
	s2RecommendCmd.Flags().IntVarP(&s2RecommendLimit, "limit", "n", 20, "Maximum results")
}

var (
	s2CitationsLimit int
	s2RecommendLimit int
)

var s2CitationsCmd = &cobra.Command{
	Use:   "citations <id>",
	Short: "Find papers that cite a graph node",
	Long: `Find papers that cite a given paper (forward citation tracking).

The id is an arXiv identifier; it does not have to be in the graph.

Examples:
  citegraph s2 citations 2406.11944
  citegraph s2 citations 1706.03762 --limit 20 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runS2Citations,
}

var s2RecommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "Recommend papers related to a graph node",
	Args:  cobra.ExactArgs(1),
	RunE:  runS2Recommend,
}

// S2PaperInfo is one discovered paper in s2 command output.
type S2PaperInfo struct {
	PaperID string `json:"paperId"`
	ArxivID string `json:"arxivId,omitempty"`
	Title   string `json:"title"`
	Year    int    `json:"year,omitempty"`
	Addable bool   `json:"addable"`
}

// S2Result is the JSON output for s2 citations/recommend.
type S2Result struct {
	ID     string        `json:"id"`
	Papers []S2PaperInfo `json:"papers"`
	Total  int           `json:"total"`
}

func newS2Client() *s2.Client {
	var opts []s2.ClientOption
	if key := config.GetS2APIKey(); key != "" {
		opts = append(opts, s2.WithAPIKey(key))
	}
	return s2.NewClient(opts...)
}

func runS2Citations(cmd *cobra.Command, args []string) error {
	id := normalizeID(args[0])

	client := newS2Client()
	page, err := client.Citations(cmd.Context(), "arXiv:"+id, s2CitationsLimit, 0)
	if err != nil {
		exitWithError(ExitRemoteError, "querying Semantic Scholar: %v", err)
	}

	res := S2Result{ID: id}
	for _, c := range page.Data {
		res.Papers = append(res.Papers, s2PaperInfo(c.CitingPaper))
	}
	res.Total = len(res.Papers)

	if humanOutput {
		printS2ResultHuman(res)
	} else {
		outputJSON(res)
	}
	return nil
}

func runS2Recommend(cmd *cobra.Command, args []string) error {
	id := normalizeID(args[0])

	client := newS2Client()
	papers, err := client.Recommendations(cmd.Context(), "arXiv:"+id, s2RecommendLimit)
	if err != nil {
		exitWithError(ExitRemoteError, "querying Semantic Scholar: %v", err)
	}

	res := S2Result{ID: id}
	for _, p := range papers {
		res.Papers = append(res.Papers, s2PaperInfo(p))
	}
	res.Total = len(res.Papers)

	if humanOutput {
		printS2ResultHuman(res)
	} else {
		outputJSON(res)
	}
	return nil
}

func s2PaperInfo(p s2.Paper) S2PaperInfo {
	return S2PaperInfo{
		PaperID: p.PaperID,
		ArxivID: p.ExternalIDs.ArXiv,
		Title:   p.Title,
		Year:    p.Year,
		Addable: p.ExternalIDs.ArXiv != "",
	}
}

func printS2ResultHuman(res S2Result) {
	if len(res.Papers) == 0 {
		fmt.Printf("No results for %s\n", res.ID)
		return
	}
	for _, p := range res.Papers {
		marker := " "
		label := p.PaperID
		if p.Addable {
			marker = "+"
			label = p.ArxivID
		}
		year := ""
		if p.Year != 0 {
			year = fmt.Sprintf(" (%d)", p.Year)
		}
		fmt.Printf("%s %-14s %s%s\n", marker, label, truncateString(p.Title, DetailTitleMaxLen), year)
	}
	fmt.Printf("\n%d result(s); + marks papers addable by arXiv id\n", res.Total)
}
