// Package storage persists the citation graph in SQLite, with JSONL
// export for git-friendly interchange.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite graph store.
type DB struct {
	db *sql.DB
}

// OpenDB opens (creating if necessary) the graph database at path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes; a single connection
	// also gives the graph its single-writer discipline.
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			authors TEXT NOT NULL,
			published TEXT NOT NULL,
			pdf_url TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z_order INTEGER NOT NULL,
			raw_citation_ids TEXT NOT NULL,
			citations TEXT NOT NULL,
			added_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_z_order ON nodes(z_order);
	`
	_, err := d.db.Exec(schema)
	return err
}
