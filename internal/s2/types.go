package s2

import "fmt"

// Paper is the subset of Semantic Scholar paper fields we consume.
type Paper struct {
	PaperID     string      `json:"paperId"`
	Title       string      `json:"title"`
	Year        int         `json:"year,omitempty"`
	ExternalIDs ExternalIDs `json:"externalIds"`
}

// ExternalIDs carries cross-references to other identifier systems.
// Only the arXiv id matters here: it is what makes an S2 result addable
// to the graph.
type ExternalIDs struct {
	ArXiv string `json:"ArXiv,omitempty"`
	DOI   string `json:"DOI,omitempty"`
}

// Citation wraps a citing paper in the citations endpoint response.
type Citation struct {
	CitingPaper Paper `json:"citingPaper"`
}

// CitationsPage is one page of the citations listing.
type CitationsPage struct {
	Data   []Citation `json:"data"`
	Offset int        `json:"offset"`
	Next   int        `json:"next,omitempty"`
}

// APIError represents a non-success HTTP status from the S2 API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("S2 API error (status %d): %s", e.StatusCode, e.Message)
}
