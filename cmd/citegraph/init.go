package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"citegraph/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a citegraph repository in the current directory",
	Long: `Create a .citegraph directory with a default configuration.

The directory holds the graph database, the document cache, and JSONL
exports.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(cwd) {
		exitWithError(ExitError, "already a citegraph repository: %s", cwd)
	}

	if err := os.MkdirAll(config.CitegraphPath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating .citegraph directory: %v", err)
	}

	if err := config.Default().Save(cwd); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized citegraph repository in %s\n", config.CitegraphPath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.CitegraphPath(cwd)})
	}
	return nil
}
