package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	moveX float64
	moveY float64
)

func init() {
	moveCmd.Flags().Float64Var(&moveX, "x", 0, "New canvas x position")
	moveCmd.Flags().Float64Var(&moveY, "y", 0, "New canvas y position")
	moveCmd.MarkFlagRequired("x")
	moveCmd.MarkFlagRequired("y")
	rootCmd.AddCommand(moveCmd)

	rootCmd.AddCommand(frontCmd)
}

var moveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a paper node on the canvas",
	Args:  cobra.ExactArgs(1),
	RunE:  runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	id := normalizeID(args[0])
	moved, err := db.MoveNode(id, moveX, moveY)
	if err != nil {
		exitWithError(ExitError, "moving node: %v", err)
	}
	if !moved {
		exitWithError(ExitError, "paper %s not in graph", id)
	}

	if humanOutput {
		fmt.Printf("Moved %s to (%.0f, %.0f)\n", id, moveX, moveY)
	} else {
		outputJSON(StatusResponse{Status: "moved"})
	}
	return nil
}

var frontCmd = &cobra.Command{
	Use:   "front <id>",
	Short: "Raise a paper node to the top of the stacking order",
	Args:  cobra.ExactArgs(1),
	RunE:  runFront,
}

func runFront(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDB(repoRoot)
	defer db.Close()

	id := normalizeID(args[0])
	raised, err := db.BringToFront(id)
	if err != nil {
		exitWithError(ExitError, "updating stacking order: %v", err)
	}
	if !raised {
		exitWithError(ExitError, "paper %s not in graph", id)
	}

	if humanOutput {
		fmt.Printf("Raised %s\n", id)
	} else {
		outputJSON(StatusResponse{Status: "raised"})
	}
	return nil
}
