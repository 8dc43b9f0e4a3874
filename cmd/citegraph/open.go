package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"citegraph/internal/pdf"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a paper's PDF in the configured reader",
	Long: `Open a paper's PDF in the configured reader.

Downloads the document first if it is not already cached. The reader
is set per-repository with 'citegraph config set pdf_reader <reader>'.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var printCmd = &cobra.Command{
	Use:   "print <id>",
	Short: "Send a paper's PDF to the default printer",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func runOpen(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	res := ensureDocument(cmd, repoRoot, cfg, normalizeID(args[0]))

	opener := pdf.NewOpener(cfg.PDFReader)
	if err := opener.Open(res.Path); err != nil {
		exitWithError(ExitError, "opening %s: %v", res.Path, err)
	}

	if humanOutput {
		fmt.Printf("Opened %s\n", res.Path)
	} else {
		outputJSON(res)
	}
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	res := ensureDocument(cmd, repoRoot, cfg, normalizeID(args[0]))

	opener := pdf.NewOpener(cfg.PDFReader)
	if err := opener.Print(res.Path); err != nil {
		exitWithError(ExitError, "printing %s: %v", res.Path, err)
	}

	if humanOutput {
		fmt.Printf("Sent %s to printer\n", res.Path)
	} else {
		outputJSON(res)
	}
	return nil
}
