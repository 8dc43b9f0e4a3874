package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"citegraph/internal/arxiv"
)

// Title truncation lengths by context.
const (
	ListTitleMaxLen   = 60 // Used in list command output
	DetailTitleMaxLen = 78 // Used in get command detail view
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or
// JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// normalizeID canonicalizes an arXiv identifier argument, exiting on
// malformed input. Commands taking an id accept the same forms as add.
func normalizeID(raw string) string {
	id, err := arxiv.Normalize(raw)
	if err != nil {
		exitWithError(ExitInvalidID, "invalid arXiv identifier: %s", raw)
	}
	return id
}

// truncateString truncates a string to maxLen runes, adding "..." if
// truncated. Counting runes keeps multibyte titles from being cut
// mid-character.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	if len(authors) > maxCount {
		return strings.Join(authors[:maxCount], ", ") + ", et al."
	}
	return strings.Join(authors, ", ")
}
