// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in
// .citegraph/config.json.
type Config struct {
	PDFReader string `json:"pdf_reader"`         // Reader preference: system, skim, zathura, etc.
	DocsDir   string `json:"docs_dir,omitempty"` // Override for the document cache directory
}

const (
	CitegraphDir = ".citegraph"
	ConfigFile   = "config.json"
	DocsDirName  = "docs"
	DBFile       = "graph.db"
	GraphFile    = "graph.jsonl"
)

// ValidReaders lists the supported PDF reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// CitegraphPath returns the path to the .citegraph directory from a
// root path.
func CitegraphPath(root string) string {
	return filepath.Join(root, CitegraphDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, CitegraphDir, ConfigFile)
}

// DBPath returns the path to graph.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, CitegraphDir, DBFile)
}

// GraphPath returns the default JSONL export path from a root path.
func GraphPath(root string) string {
	return filepath.Join(root, CitegraphDir, GraphFile)
}

// DocsPath returns the document cache directory, honoring the
// docs_dir override when cfg is non-nil.
func DocsPath(root string, cfg *Config) string {
	if cfg != nil && cfg.DocsDir != "" {
		return ExpandPath(cfg.DocsDir)
	}
	return filepath.Join(root, CitegraphDir, DocsDirName)
}

// IsRepository checks if the given path contains a citegraph repository.
func IsRepository(root string) bool {
	info, err := os.Stat(CitegraphPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a citegraph
// repository. Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a citegraph repository (no .citegraph directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Default returns the configuration a fresh repository starts with.
func Default() *Config {
	return &Config{PDFReader: "system"}
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil // Empty defaults to "system"
	}

	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
}

// ValidateDocsDir checks that a docs_dir override exists and is a
// directory.
func ValidateDocsDir(path string) error {
	if path == "" {
		return nil // Empty uses the repository default
	}

	expanded := ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expanded)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expanded)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
