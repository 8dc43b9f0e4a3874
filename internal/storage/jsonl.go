package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"citegraph/internal/graph"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL
// lines (1MB per line; abstracts plus citation lists stay well under).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAllNodes reads all graph nodes from a JSONL file. A missing file
// yields an empty slice, not an error.
func ReadAllNodes(path string) ([]graph.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	var nodes []graph.Node
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var n graph.Node
		if err := json.Unmarshal(line, &n); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		nodes = append(nodes, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}

	return nodes, nil
}

// WriteAllNodes writes graph nodes to a JSONL file, one node per line.
// The write goes to a temp file in the same directory and renames into
// place so readers never observe a half-written graph.
func WriteAllNodes(path string, nodes []graph.Node) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".graph-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, n := range nodes {
		if err := enc.Encode(n); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding node %s: %w", n.Paper.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing graph file: %w", err)
	}
	return nil
}
