package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"citegraph/internal/graph"
)

// InsertNode persists a new node, assigning it the next z-order in
// place. Returns false without modifying anything when a node with the
// same id already exists.
func (d *DB) InsertNode(n *graph.Node) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM nodes WHERE id = ?`, n.Paper.ID).Scan(&count); err != nil {
		return false, fmt.Errorf("checking node existence: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	var maxZ sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(z_order) FROM nodes`).Scan(&maxZ); err != nil {
		return false, fmt.Errorf("querying z-order: %w", err)
	}
	n.ZOrder = int(maxZ.Int64) + 1

	authors, err := json.Marshal(n.Paper.Authors)
	if err != nil {
		return false, fmt.Errorf("encoding authors: %w", err)
	}
	rawIDs, err := json.Marshal(n.RawCitationIDs)
	if err != nil {
		return false, fmt.Errorf("encoding citation ids: %w", err)
	}
	citations, err := json.Marshal(n.Citations)
	if err != nil {
		return false, fmt.Errorf("encoding citations: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO nodes (id, title, abstract, authors, published, pdf_url,
			x, y, z_order, raw_citation_ids, citations, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.Paper.ID, n.Paper.Title, n.Paper.Abstract, string(authors),
		n.Paper.Published.Format(time.RFC3339), n.Paper.PDFURL,
		n.X, n.Y, n.ZOrder, string(rawIDs), string(citations),
		n.AddedAt.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("inserting node: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return true, nil
}

// GetNode returns the node with the given id, or nil if absent.
func (d *DB) GetNode(id string) (*graph.Node, error) {
	row := d.db.QueryRow(`
		SELECT id, title, abstract, authors, published, pdf_url,
			x, y, z_order, raw_citation_ids, citations, added_at
		FROM nodes WHERE id = ?
	`, id)

	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying node: %w", err)
	}
	return n, nil
}

// ListNodes returns all nodes in ascending z-order (back to front).
func (d *DB) ListNodes() ([]graph.Node, error) {
	rows, err := d.db.Query(`
		SELECT id, title, abstract, authors, published, pdf_url,
			x, y, z_order, raw_citation_ids, citations, added_at
		FROM nodes ORDER BY z_order
	`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []graph.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		nodes = append(nodes, *n)
	}
	return nodes, rows.Err()
}

// DeleteNode removes the node with the given id. Incident edges are
// implicit and need no cleanup; the cached document is left in place.
func (d *DB) DeleteNode(id string) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting node: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MoveNode updates a node's canvas position.
func (d *DB) MoveNode(id string, x, y float64) (bool, error) {
	res, err := d.db.Exec(`UPDATE nodes SET x = ?, y = ? WHERE id = ?`, x, y, id)
	if err != nil {
		return false, fmt.Errorf("moving node: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// BringToFront raises the node above all others in stacking order.
func (d *DB) BringToFront(id string) (bool, error) {
	res, err := d.db.Exec(`
		UPDATE nodes SET z_order = 1 + (SELECT COALESCE(MAX(z_order), 0) FROM nodes)
		WHERE id = ?
	`, id)
	if err != nil {
		return false, fmt.Errorf("updating z-order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ReplaceAll clears the graph and loads the given nodes verbatim,
// keeping their positions and z-orders. Used by JSONL import.
func (d *DB) ReplaceAll(nodes []graph.Node) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM nodes`); err != nil {
		return fmt.Errorf("clearing nodes: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (id, title, abstract, authors, published, pdf_url,
			x, y, z_order, raw_citation_ids, citations, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		authors, err := json.Marshal(n.Paper.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors: %w", err)
		}
		rawIDs, err := json.Marshal(n.RawCitationIDs)
		if err != nil {
			return fmt.Errorf("encoding citation ids: %w", err)
		}
		citations, err := json.Marshal(n.Citations)
		if err != nil {
			return fmt.Errorf("encoding citations: %w", err)
		}

		_, err = stmt.Exec(n.Paper.ID, n.Paper.Title, n.Paper.Abstract, string(authors),
			n.Paper.Published.Format(time.RFC3339), n.Paper.PDFURL,
			n.X, n.Y, n.ZOrder, string(rawIDs), string(citations),
			n.AddedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", n.Paper.ID, err)
		}
	}

	return tx.Commit()
}

// scanner abstracts sql.Row and sql.Rows for scanNode.
type scanner interface {
	Scan(dest ...any) error
}

func scanNode(s scanner) (*graph.Node, error) {
	var (
		n                  graph.Node
		authors, rawIDs    string
		citations          string
		published, addedAt string
	)

	err := s.Scan(&n.Paper.ID, &n.Paper.Title, &n.Paper.Abstract, &authors,
		&published, &n.Paper.PDFURL, &n.X, &n.Y, &n.ZOrder,
		&rawIDs, &citations, &addedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authors), &n.Paper.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors for %s: %w", n.Paper.ID, err)
	}
	if err := json.Unmarshal([]byte(rawIDs), &n.RawCitationIDs); err != nil {
		return nil, fmt.Errorf("decoding citation ids for %s: %w", n.Paper.ID, err)
	}
	if err := json.Unmarshal([]byte(citations), &n.Citations); err != nil {
		return nil, fmt.Errorf("decoding citations for %s: %w", n.Paper.ID, err)
	}

	if n.Paper.Published, err = time.Parse(time.RFC3339, published); err != nil {
		return nil, fmt.Errorf("parsing published date for %s: %w", n.Paper.ID, err)
	}
	if n.AddedAt, err = time.Parse(time.RFC3339, addedAt); err != nil {
		return nil, fmt.Errorf("parsing added_at for %s: %w", n.Paper.ID, err)
	}

	return &n, nil
}
