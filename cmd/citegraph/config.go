package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"citegraph/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  citegraph config                       # Show all config
  citegraph config pdf-reader            # Get specific value
  citegraph config pdf-reader skim       # Set PDF reader
  citegraph config docs-dir ~/papers     # Set document cache location

Keys:
  pdf-reader  PDF reader preference (system, skim, preview, zathura, evince, okular)
  docs-dir    Document cache directory (default .citegraph/docs)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the JSON shape for the full config.
type ConfigResponse struct {
	PDFReader string `json:"pdf_reader"`
	DocsDir   string `json:"docs_dir"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("pdf-reader: %s\n", cfg.PDFReader)
			fmt.Printf("docs-dir:   %s\n", cfg.DocsDir)
		} else {
			outputJSON(ConfigResponse{PDFReader: cfg.PDFReader, DocsDir: cfg.DocsDir})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		switch key {
		case "pdf-reader":
			if humanOutput {
				fmt.Println(cfg.PDFReader)
			} else {
				outputJSON(map[string]string{"pdf_reader": cfg.PDFReader})
			}
		case "docs-dir":
			if humanOutput {
				fmt.Println(cfg.DocsDir)
			} else {
				outputJSON(map[string]string{"docs_dir": cfg.DocsDir})
			}
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch key {
	case "pdf-reader":
		if err := config.ValidatePDFReader(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.PDFReader = value

	case "docs-dir":
		expanded := config.ExpandPath(value)
		if err := config.ValidateDocsDir(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.DocsDir = expanded

	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s to %s\n", key, value)
	} else {
		outputJSON(map[string]string{"status": "ok", "key": key, "value": value})
	}
	return nil
}

// normalizeKey accepts both pdf-reader and pdf_reader spellings.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}
