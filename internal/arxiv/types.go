package arxiv

import (
	"fmt"
	"strings"
	"time"

	"citegraph/internal/paper"
)

// atomFeed mirrors the subset of the arXiv Atom response we consume.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// paperFromEntry maps one Atom entry to a Paper. The entry id is the
// abstract page URL, so the canonical id is re-derived with Normalize
// and stored keys match user-entered ones. An entry whose link list has
// no "pdf" entry fails decoding: the document link is required.
func paperFromEntry(e atomEntry) (paper.Paper, error) {
	id, err := Normalize(e.ID)
	if err != nil {
		return paper.Paper{}, fmt.Errorf("%w: entry id %q", ErrInvalidResponse, e.ID)
	}

	var pdfURL string
	for _, l := range e.Links {
		if l.Title == "pdf" {
			pdfURL = l.Href
			break
		}
	}
	if pdfURL == "" {
		return paper.Paper{}, fmt.Errorf("%w: no pdf link for %s", ErrInvalidResponse, id)
	}

	published, err := time.Parse(time.RFC3339, e.Published)
	if err != nil {
		return paper.Paper{}, fmt.Errorf("%w: published date %q", ErrInvalidResponse, e.Published)
	}

	authors := make([]string, len(e.Authors))
	for i, a := range e.Authors {
		authors[i] = strings.TrimSpace(a.Name)
	}

	return paper.Paper{
		ID:        id,
		Title:     collapseWhitespace(e.Title),
		Abstract:  strings.TrimSpace(e.Summary),
		Authors:   authors,
		Published: published,
		PDFURL:    pdfURL,
	}, nil
}

// collapseWhitespace joins the multi-line titles the Atom feed produces
// into a single line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
