// Package pdf opens and prints cached paper documents with the
// platform viewer.
package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener launches an external viewer for cached documents.
type Opener struct {
	reader string
}

// NewOpener creates an Opener using the given reader preference.
// Empty defaults to "system".
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{reader: reader}
}

// Open opens a document in the configured reader. The path should be
// an absolute path to an existing file.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document does not exist: %s", path)
		}
		return fmt.Errorf("checking document: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = o.darwinCommand(path)
	case "linux":
		cmd = o.linuxCommand(path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// Print sends a document to the default printer via lp.
func (o *Opener) Print(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document does not exist: %s", path)
		}
		return fmt.Errorf("checking document: %w", err)
	}

	out, err := exec.Command("lp", path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("printing: %v: %s", err, out)
	}
	return nil
}

// darwinCommand returns the command to open a document on macOS.
func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.reader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

// linuxCommand returns the command to open a document on Linux.
func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.reader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
