// Package graph holds the citation graph model and the add-paper
// assembler that populates it.
package graph

import (
	"time"

	"citegraph/internal/paper"
)

// Node is a paper materialized in the graph: metadata plus presentation
// state and the citation identifiers extracted from its document.
type Node struct {
	Paper paper.Paper `json:"paper"`

	// Canvas position and stacking order.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ZOrder int     `json:"z_order"`

	// RawCitationIDs holds every identifier extracted from the
	// document, whether or not its target is materialized. Superset of
	// the node's outgoing edges.
	RawCitationIDs []string `json:"raw_citation_ids,omitempty"`

	// Citations holds resolved metadata for extracted identifiers, so
	// a citation can be offered for adding by title before it becomes
	// a node. Empty when citation resolution failed or was skipped.
	Citations []paper.Paper `json:"citations,omitempty"`

	AddedAt time.Time `json:"added_at"`
}

// Edge is a directed citation between two materialized nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Edges returns the citation edges implied by nodes. An edge exists
// only when both endpoints are materialized; extracted ids whose target
// is absent stay latent and produce no edge. Node removal therefore
// needs no edge cleanup.
func Edges(nodes []Node) []Edge {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.Paper.ID] = true
	}

	var edges []Edge
	for _, n := range nodes {
		for _, id := range n.RawCitationIDs {
			if id != n.Paper.ID && present[id] {
				edges = append(edges, Edge{From: n.Paper.ID, To: id})
			}
		}
	}
	return edges
}

// Latent returns the extracted citation ids of n whose targets are not
// materialized in nodes.
func Latent(n Node, nodes []Node) []string {
	present := make(map[string]bool, len(nodes))
	for _, other := range nodes {
		present[other.Paper.ID] = true
	}

	var latent []string
	for _, id := range n.RawCitationIDs {
		if id != n.Paper.ID && !present[id] {
			latent = append(latent, id)
		}
	}
	return latent
}
