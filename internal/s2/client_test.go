package s2

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetPaper(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{
			"paperId": "abc123",
			"title": "Attention Is All You Need",
			"year": 2017,
			"externalIds": {"ArXiv": "1706.03762", "DOI": "10.0/x"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))

	p, err := client.GetPaper(context.Background(), "arXiv:1706.03762")
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}

	if gotPath != "/paper/arXiv:1706.03762" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if p.PaperID != "abc123" || p.Year != 2017 {
		t.Errorf("paper = %+v", p)
	}
	if p.ExternalIDs.ArXiv != "1706.03762" {
		t.Errorf("ExternalIDs.ArXiv = %q", p.ExternalIDs.ArXiv)
	}
}

func TestCitations(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"offset": 0,
			"next": 2,
			"data": [
				{"citingPaper": {"paperId": "p1", "title": "First", "externalIds": {"ArXiv": "2406.11944"}}},
				{"citingPaper": {"paperId": "p2", "title": "Second"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	page, err := client.Citations(context.Background(), "arXiv:1706.03762", 2, 0)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}

	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("limit = %v", got)
	}
	if len(page.Data) != 2 {
		t.Fatalf("len(Data) = %d", len(page.Data))
	}
	if page.Data[0].CitingPaper.ExternalIDs.ArXiv != "2406.11944" {
		t.Errorf("citing paper = %+v", page.Data[0].CitingPaper)
	}
	if page.Data[1].CitingPaper.ExternalIDs.ArXiv != "" {
		t.Errorf("paper without arXiv id decoded as %+v", page.Data[1].CitingPaper)
	}
	if page.Next != 2 {
		t.Errorf("Next = %d", page.Next)
	}
}

func TestCitationsDefaultLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"offset": 0, "data": []}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.Citations(context.Background(), "p", 0, 0); err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if gotLimit != "100" {
		t.Errorf("limit = %q, want default 100", gotLimit)
	}
}

func TestGetPaperAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Paper not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPaper(context.Background(), "arXiv:9999.99999")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}
