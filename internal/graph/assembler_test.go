package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"citegraph/internal/arxiv"
	"citegraph/internal/paper"
)

// fakeResolver serves metadata from a map and counts calls.
type fakeResolver struct {
	papers      map[string]paper.Paper
	manyErr     error
	resolveOnes atomic.Int32
}

func (r *fakeResolver) ResolveOne(ctx context.Context, id string) (paper.Paper, error) {
	r.resolveOnes.Add(1)
	p, ok := r.papers[id]
	if !ok {
		return paper.Paper{}, fmt.Errorf("%w: %s", arxiv.ErrNotFound, id)
	}
	return p, nil
}

func (r *fakeResolver) ResolveMany(ctx context.Context, ids []string) ([]paper.Paper, error) {
	if r.manyErr != nil {
		return nil, r.manyErr
	}
	var out []paper.Paper
	for _, id := range ids {
		if p, ok := r.papers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeFetcher pretends every document lives at /docs/<id>.pdf.
type fakeFetcher struct {
	err     error
	delay   time.Duration
	fetches atomic.Int32
}

func (f *fakeFetcher) EnsureLocal(ctx context.Context, p paper.Paper) (string, error) {
	f.fetches.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return "/docs/" + p.ID + ".pdf", nil
}

// memStore is an in-memory Store with the same uniqueness and z-order
// semantics as the SQLite store.
type memStore struct {
	mu    sync.Mutex
	nodes map[string]Node
	maxZ  int
}

func newMemStore() *memStore {
	return &memStore{nodes: make(map[string]Node)}
}

func (s *memStore) InsertNode(n *Node) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[n.Paper.ID]; exists {
		return false, nil
	}
	s.maxZ++
	n.ZOrder = s.maxZ
	s.nodes[n.Paper.ID] = *n
	return true, nil
}

func (s *memStore) GetNode(id string) (*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[id]; ok {
		return &n, nil
	}
	return nil, nil
}

func testAssembler(r *fakeResolver, f *fakeFetcher, citations map[string][]string, s Store) *Assembler {
	extract := func(path string) []string {
		return citations[path]
	}
	a := NewAssembler(r, f, extract, s)
	a.Warnings = io.Discard
	return a
}

func attentionResolver() *fakeResolver {
	return &fakeResolver{papers: map[string]paper.Paper{
		"1706.03762": {ID: "1706.03762", Title: "Attention Is All You Need"},
		"1409.0473":  {ID: "1409.0473", Title: "Neural Machine Translation"},
		"1512.03385": {ID: "1512.03385", Title: "Deep Residual Learning"},
	}}
}

func TestAddPaper(t *testing.T) {
	resolver := attentionResolver()
	store := newMemStore()
	a := testAssembler(resolver, &fakeFetcher{}, map[string][]string{
		"/docs/1706.03762.pdf": {"1409.0473", "1512.03385", "1706.03762"},
	}, store)

	res, err := a.AddPaper(context.Background(), "arXiv:1706.03762v5", Origin{X: 100, Y: 200})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}

	if !res.Created {
		t.Error("Created = false for a new paper")
	}
	if res.Node.Paper.ID != "1706.03762" {
		t.Errorf("ID = %q", res.Node.Paper.ID)
	}
	if res.Node.X != 100 || res.Node.Y != 200 {
		t.Errorf("position = (%v, %v), want (100, 200)", res.Node.X, res.Node.Y)
	}
	if res.Node.ZOrder != 1 {
		t.Errorf("ZOrder = %d, want 1", res.Node.ZOrder)
	}
	if res.Degraded != "" {
		t.Errorf("Degraded = %q", res.Degraded)
	}

	// Self-citation suppressed, other two kept.
	wantCites := []string{"1409.0473", "1512.03385"}
	if !reflect.DeepEqual(res.Node.RawCitationIDs, wantCites) {
		t.Errorf("RawCitationIDs = %v, want %v", res.Node.RawCitationIDs, wantCites)
	}
	if res.ResolvedCitations != 2 || len(res.Node.Citations) != 2 {
		t.Errorf("ResolvedCitations = %d, Citations = %v", res.ResolvedCitations, res.Node.Citations)
	}
	if res.Node.AddedAt.IsZero() {
		t.Error("AddedAt not set")
	}
}

func TestAddPaperInvalidIdentifier(t *testing.T) {
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, newMemStore())

	_, err := a.AddPaper(context.Background(), "not a paper", Origin{})
	if !errors.Is(err, arxiv.ErrInvalidIdentifier) {
		t.Fatalf("err = %v, want ErrInvalidIdentifier", err)
	}
}

func TestAddPaperUnknownIDAborts(t *testing.T) {
	store := newMemStore()
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, store)

	_, err := a.AddPaper(context.Background(), "2401.99999", Origin{})
	if !errors.Is(err, arxiv.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n, _ := store.GetNode("2401.99999"); n != nil {
		t.Error("failed resolution must not mutate the graph")
	}
}

func TestAddPaperDegradesOnFetchFailure(t *testing.T) {
	store := newMemStore()
	a := testAssembler(attentionResolver(), &fakeFetcher{err: errors.New("503")}, nil, store)

	res, err := a.AddPaper(context.Background(), "1706.03762", Origin{})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}

	if !res.Created {
		t.Error("degraded add must still create the node")
	}
	if res.Degraded != "document unavailable" {
		t.Errorf("Degraded = %q", res.Degraded)
	}
	if len(res.Node.RawCitationIDs) != 0 {
		t.Errorf("RawCitationIDs = %v, want none", res.Node.RawCitationIDs)
	}
	if n, _ := store.GetNode("1706.03762"); n == nil {
		t.Error("node missing from store")
	}
}

func TestAddPaperKeepsRawIDsWhenCitationResolutionFails(t *testing.T) {
	resolver := attentionResolver()
	resolver.manyErr = errors.New("rate limited")
	a := testAssembler(resolver, &fakeFetcher{}, map[string][]string{
		"/docs/1706.03762.pdf": {"1409.0473"},
	}, newMemStore())

	res, err := a.AddPaper(context.Background(), "1706.03762", Origin{})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}

	if res.Degraded != "citations unresolved" {
		t.Errorf("Degraded = %q", res.Degraded)
	}
	if !reflect.DeepEqual(res.Node.RawCitationIDs, []string{"1409.0473"}) {
		t.Errorf("RawCitationIDs = %v, raw ids must survive resolution failure", res.Node.RawCitationIDs)
	}
	if len(res.Node.Citations) != 0 {
		t.Errorf("Citations = %v, want none", res.Node.Citations)
	}
}

func TestAddPaperCancelledContextLeavesNoNode(t *testing.T) {
	store := newMemStore()
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := a.AddPaper(ctx, "1706.03762", Origin{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AddPaper err = %v, want context.Canceled", err)
	}
	if res.Created || res.Degraded != "" {
		t.Errorf("Result = %+v, want zero value on abort", res)
	}
	if n, _ := store.GetNode("1706.03762"); n != nil {
		t.Errorf("node %s committed after cancellation", n.Paper.ID)
	}
}

func TestAddPaperCitationResolutionCancelAborts(t *testing.T) {
	store := newMemStore()
	resolver := attentionResolver()
	resolver.manyErr = fmt.Errorf("fetching feed: %w", context.Canceled)
	a := testAssembler(resolver, &fakeFetcher{}, map[string][]string{
		"/docs/1706.03762.pdf": {"1409.0473"},
	}, store)

	_, err := a.AddPaper(context.Background(), "1706.03762", Origin{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AddPaper err = %v, want context.Canceled", err)
	}
	if n, _ := store.GetNode("1706.03762"); n != nil {
		t.Errorf("node %s committed after cancellation", n.Paper.ID)
	}
}

func TestAddPapersCancelledContextLeavesNoNodes(t *testing.T) {
	store := newMemStore()
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := a.AddPapers(ctx, []string{"1706.03762", "1409.0473"}, Origin{})
	for _, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Errorf("%s: Err = %v, want context.Canceled", o.Raw, o.Err)
		}
		if n, _ := store.GetNode(o.Raw); n != nil {
			t.Errorf("node %s committed after cancellation", n.Paper.ID)
		}
	}
}

func TestAddPaperExistingIDIsNoOp(t *testing.T) {
	resolver := attentionResolver()
	a := testAssembler(resolver, &fakeFetcher{}, nil, newMemStore())

	first, err := a.AddPaper(context.Background(), "1706.03762", Origin{X: 1})
	if err != nil {
		t.Fatalf("first AddPaper: %v", err)
	}
	second, err := a.AddPaper(context.Background(), "1706.03762v2", Origin{X: 99})
	if err != nil {
		t.Fatalf("second AddPaper: %v", err)
	}

	if !first.Created || second.Created {
		t.Errorf("Created = %v then %v, want true then false", first.Created, second.Created)
	}
	if second.Node.X != 1 {
		t.Errorf("re-add moved the node: X = %v", second.Node.X)
	}
}

func TestAddPapersPartialFailure(t *testing.T) {
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, newMemStore())

	outcomes := a.AddPapers(context.Background(), []string{
		"1706.03762",
		"garbage",
		"1512.03385",
	}, Origin{})

	if outcomes[0].Err != nil || !outcomes[0].Created {
		t.Errorf("outcome[0] = %+v", outcomes[0])
	}
	if !errors.Is(outcomes[1].Err, arxiv.ErrInvalidIdentifier) {
		t.Errorf("outcome[1].Err = %v", outcomes[1].Err)
	}
	if outcomes[2].Err != nil || !outcomes[2].Created {
		t.Errorf("outcome[2] = %+v, one bad input must not abort the rest", outcomes[2])
	}
}

func TestAddPapersDuplicateInputsCollapse(t *testing.T) {
	resolver := attentionResolver()
	fetcher := &fakeFetcher{delay: 20 * time.Millisecond}
	store := newMemStore()
	a := testAssembler(resolver, fetcher, nil, store)

	outcomes := a.AddPapers(context.Background(), []string{
		"1706.03762",
		"arXiv:1706.03762v5",
		"https://arxiv.org/abs/1706.03762",
	}, Origin{})

	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome[%d].Err = %v", i, o.Err)
		}
	}

	created := 0
	for _, o := range outcomes {
		if o.Created {
			created++
		}
	}
	if created != 1 {
		t.Errorf("created = %d nodes for one paper, want 1", created)
	}

	if n := fetcher.fetches.Load(); n != 1 {
		t.Errorf("fetches = %d, duplicate in-flight ids must share one pipeline", n)
	}
	if n := resolver.resolveOnes.Load(); n != 1 {
		t.Errorf("metadata resolutions = %d, want 1", n)
	}
}

func TestAddPapersAssignsDistinctZOrders(t *testing.T) {
	store := newMemStore()
	a := testAssembler(attentionResolver(), &fakeFetcher{}, nil, store)

	outcomes := a.AddPapers(context.Background(), []string{
		"1706.03762", "1409.0473", "1512.03385",
	}, Origin{})

	seen := make(map[int]bool)
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome[%d].Err = %v", i, o.Err)
		}
		if seen[o.Node.ZOrder] {
			t.Errorf("duplicate z-order %d", o.Node.ZOrder)
		}
		seen[o.Node.ZOrder] = true
	}
}
