package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"citegraph/internal/arxiv"
	"citegraph/internal/paper"
)

// Resolver fetches paper metadata from the bibliographic API.
type Resolver interface {
	ResolveOne(ctx context.Context, id string) (paper.Paper, error)
	ResolveMany(ctx context.Context, ids []string) ([]paper.Paper, error)
}

// Fetcher makes a paper's source document available locally.
type Fetcher interface {
	EnsureLocal(ctx context.Context, p paper.Paper) (string, error)
}

// Extractor scans a local document for cited arXiv identifiers.
type Extractor func(path string) []string

// Store is the persistence surface the assembler merges into. All graph
// mutation goes through it under single-writer discipline.
type Store interface {
	// InsertNode persists a new node, assigning it the top z-order in
	// place. Inserting an id that already exists changes nothing and
	// returns false: re-adding a paper is a pure no-op.
	InsertNode(n *Node) (created bool, err error)

	// GetNode returns the node with the given id, or nil.
	GetNode(id string) (*Node, error)
}

// Origin is the canvas position assigned to newly added nodes. It comes
// from the caller (the viewport), never computed here.
type Origin struct {
	X float64
	Y float64
}

// Result reports the outcome of one add-paper pipeline.
type Result struct {
	Node Node `json:"node"`

	// Created is false when the id was already in the graph and the
	// add was a no-op.
	Created bool `json:"created"`

	// ResolvedCitations counts the extracted citations whose metadata
	// resolved in this pass.
	ResolvedCitations int `json:"resolved_citations"`

	// Degraded names the enrichment step that failed, if any. A
	// degraded add still produces a node.
	Degraded string `json:"degraded,omitempty"`
}

// Outcome pairs an input identifier with its add result or error.
type Outcome struct {
	Raw string
	Result
	Err error
}

// Assembler coordinates the add-paper pipeline: normalize, resolve
// metadata, fetch the document, extract citations, resolve them, merge.
// Pipelines for different papers run concurrently; duplicate in-flight
// identifiers collapse onto one pipeline via singleflight, and every
// merge flows through a single consumer so the node-uniqueness
// invariant is checked in exactly one place.
type Assembler struct {
	resolver Resolver
	fetcher  Fetcher
	extract  Extractor
	store    Store

	inflight singleflight.Group

	// Warnings receives non-fatal enrichment failures. Defaults to
	// stderr; nil discards.
	Warnings io.Writer
}

// NewAssembler creates an Assembler over explicitly injected services.
func NewAssembler(r Resolver, f Fetcher, e Extractor, s Store) *Assembler {
	return &Assembler{
		resolver: r,
		fetcher:  f,
		extract:  e,
		store:    s,
		Warnings: os.Stderr,
	}
}

// AddPaper resolves raw into a paper node with citations and merges it
// into the graph. Identifier and primary-metadata failures abort with
// no graph mutation; document fetch, extraction, and citation
// resolution failures degrade to a node with partial citation data.
// A cancelled context aborts without committing anything.
func (a *Assembler) AddPaper(ctx context.Context, raw string, origin Origin) (Result, error) {
	id, err := arxiv.Normalize(raw)
	if err != nil {
		return Result{}, err
	}

	v, err, _ := a.inflight.Do(id, func() (any, error) {
		return a.assembleAndMerge(ctx, id, origin)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

// AddPapers runs the pipeline for each input concurrently. Assembly
// (network, disk, extraction) fans out across a bounded worker group;
// merges are serialized through one consumer goroutine. A failure for
// one input never aborts the others.
func (a *Assembler) AddPapers(ctx context.Context, raws []string, origin Origin) []Outcome {
	type assembled struct {
		idx  int
		node Node
		meta Result
	}

	outcomes := make([]Outcome, len(raws))
	for i, raw := range raws {
		outcomes[i] = Outcome{Raw: raw}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	merges := make(chan assembled)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for m := range merges {
			if err := gctx.Err(); err != nil {
				outcomes[m.idx].Err = err
				continue
			}
			created, err := a.store.InsertNode(&m.node)
			if err != nil {
				outcomes[m.idx].Err = fmt.Errorf("merging %s: %w", m.node.Paper.ID, err)
				continue
			}
			res := m.meta
			res.Node = m.node
			res.Created = created
			outcomes[m.idx].Result = res
		}
	}()

	for i, raw := range raws {
		g.Go(func() error {
			id, err := arxiv.Normalize(raw)
			if err != nil {
				outcomes[i].Err = err
				return nil
			}

			// Fast path: a paper already in the graph is a no-op, no
			// network work needed.
			if existing, err := a.store.GetNode(id); err == nil && existing != nil {
				outcomes[i].Result = Result{Node: *existing, Created: false}
				return nil
			}

			v, err, _ := a.inflight.Do(id, func() (any, error) {
				node, meta, err := a.assemble(gctx, id, origin)
				if err != nil {
					return nil, err
				}
				return assembled{node: node, meta: meta}, nil
			})
			if err != nil {
				outcomes[i].Err = err
				return nil
			}

			m := v.(assembled)
			m.idx = i
			select {
			case merges <- m:
			case <-gctx.Done():
				outcomes[i].Err = gctx.Err()
			}
			return nil
		})
	}

	g.Wait()
	close(merges)
	<-consumerDone

	return outcomes
}

// assembleAndMerge is the single-identifier path: build the node, then
// merge it. The store serializes writers, so this needs no extra queue.
func (a *Assembler) assembleAndMerge(ctx context.Context, id string, origin Origin) (Result, error) {
	node, res, err := a.assemble(ctx, id, origin)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	created, err := a.store.InsertNode(&node)
	if err != nil {
		return Result{}, fmt.Errorf("merging %s: %w", id, err)
	}

	res.Node = node
	res.Created = created
	return res, nil
}

// assemble builds a fully populated node without touching the store.
// Only primary metadata resolution and cancellation can fail; other
// enrichment errors (document fetch, extraction, citation resolution)
// degrade.
func (a *Assembler) assemble(ctx context.Context, id string, origin Origin) (Node, Result, error) {
	p, err := a.resolver.ResolveOne(ctx, id)
	if err != nil {
		return Node{}, Result{}, fmt.Errorf("resolving %s: %w", id, err)
	}

	node := Node{
		Paper:   p,
		X:       origin.X,
		Y:       origin.Y,
		AddedAt: time.Now().UTC(),
	}
	res := Result{}

	path, err := a.fetcher.EnsureLocal(ctx, p)
	if err != nil {
		if cerr := cancelErr(ctx, err); cerr != nil {
			return Node{}, Result{}, cerr
		}
		a.warnf("document for %s unavailable: %v", id, err)
		res.Degraded = "document unavailable"
		res.Node = node
		return node, res, nil
	}

	// Self-citation suppression: papers routinely mention their own id.
	var cites []string
	for _, c := range a.extract(path) {
		if c != p.ID {
			cites = append(cites, c)
		}
	}
	node.RawCitationIDs = cites

	if len(cites) > 0 {
		papers, err := a.resolver.ResolveMany(ctx, cites)
		if err != nil {
			if cerr := cancelErr(ctx, err); cerr != nil {
				return Node{}, Result{}, cerr
			}
			// Raw ids stay on the node so the citations can still be
			// offered for adding later, just without titles.
			a.warnf("citations for %s unresolved: %v", id, err)
			res.Degraded = "citations unresolved"
		} else {
			node.Citations = papers
			res.ResolvedCitations = len(papers)
		}
	}

	res.Node = node
	return node, res, nil
}

// cancelErr reports whether an enrichment-step failure is really an
// abandoned pipeline. A cancelled context must abort the assembly, not
// merge a partial node as degraded.
func cancelErr(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ctx.Err()
}

func (a *Assembler) warnf(format string, args ...any) {
	if a.Warnings == nil {
		return
	}
	fmt.Fprintf(a.Warnings, "warning: "+format+"\n", args...)
}
