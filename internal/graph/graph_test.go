package graph

import (
	"reflect"
	"testing"

	"citegraph/internal/paper"
)

func nodeWithCitations(id string, cites ...string) Node {
	return Node{Paper: paper.Paper{ID: id}, RawCitationIDs: cites}
}

func TestEdges(t *testing.T) {
	nodes := []Node{
		nodeWithCitations("1706.03762"),
		nodeWithCitations("2010.11929", "1706.03762", "1409.0473"),
		nodeWithCitations("2406.11944", "2010.11929", "1706.03762"),
	}

	got := Edges(nodes)
	want := []Edge{
		{From: "2010.11929", To: "1706.03762"},
		{From: "2406.11944", To: "2010.11929"},
		{From: "2406.11944", To: "1706.03762"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
}

func TestEdgesSkipsSelfCitation(t *testing.T) {
	nodes := []Node{nodeWithCitations("2406.11944", "2406.11944")}
	if got := Edges(nodes); got != nil {
		t.Errorf("Edges = %v, want nil", got)
	}
}

func TestEdgesUnmaterializedTargetProducesNoEdge(t *testing.T) {
	nodes := []Node{nodeWithCitations("2406.11944", "1901.00001")}
	if got := Edges(nodes); got != nil {
		t.Errorf("Edges = %v, want nil (target not in graph)", got)
	}
}

func TestEdgesAppearWhenTargetIsAdded(t *testing.T) {
	// Removing a node needs no edge cleanup: the edge set is always
	// derived from the current node set.
	citing := nodeWithCitations("2406.11944", "1901.00001")

	if got := Edges([]Node{citing}); len(got) != 0 {
		t.Fatalf("latent citation produced edge: %v", got)
	}

	both := []Node{citing, nodeWithCitations("1901.00001")}
	got := Edges(both)
	want := []Edge{{From: "2406.11944", To: "1901.00001"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
}

func TestLatent(t *testing.T) {
	n := nodeWithCitations("2406.11944", "1706.03762", "1901.00001", "2406.11944")
	nodes := []Node{n, nodeWithCitations("1706.03762")}

	got := Latent(n, nodes)
	want := []string{"1901.00001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Latent = %v, want %v", got, want)
	}
}
