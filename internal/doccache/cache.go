// Package doccache maintains the local cache of downloaded paper
// documents, one file per paper, downloaded at most once.
package doccache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"citegraph/internal/paper"
)

var (
	// ErrFetch indicates a transport failure while downloading a
	// document. Not retried internally; callers may re-run the whole
	// operation.
	ErrFetch = errors.New("document download failed")

	// ErrStorage indicates a filesystem failure while placing a
	// downloaded document into the cache.
	ErrStorage = errors.New("document cache write failed")
)

// DefaultTimeout bounds a single document download.
const DefaultTimeout = 5 * time.Minute

// Store caches paper documents on disk, keyed by canonical id.
// Safe for concurrent use across different papers; concurrent calls for
// the same paper may both download. Callers needing exactly-once
// download per paper serialize externally (the assembler does, with
// singleflight).
type Store struct {
	dir        string
	httpClient *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Store) {
		s.httpClient = hc
	}
}

// New creates a Store rooted at dir. The directory is created on the
// first download.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:        dir,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the cache path for a paper id without touching the
// network or the disk. Legacy ids contain a slash, which is replaced so
// every id maps to a single file name.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(id, "/", "_")+".pdf")
}

// EnsureLocal guarantees the paper's document is present in the cache
// and returns its path. An existing file is a cache hit and costs no
// network access. A download goes to a temp file in the cache directory
// first and is renamed into place, so a partial download never
// masquerades as a cached document.
func (s *Store) EnsureLocal(ctx context.Context, p paper.Paper) (string, error) {
	dst := s.Path(p.ID)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.PDFURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: http %s", ErrFetch, resp.Status)
	}

	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return dst, nil
}

// Cached reports whether the document for id is already on disk.
func (s *Store) Cached(id string) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}
