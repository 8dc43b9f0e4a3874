// Package paper defines the core domain type for arXiv papers.
package paper

import "time"

// Paper describes an arXiv paper as returned by the metadata API.
// Instances are built only by the resolver and never mutated afterwards.
type Paper struct {
	// ID is the canonical arXiv identifier, version suffix stripped.
	// Modern form "2406.11944" or legacy form "math.GT/0309136".
	ID string `json:"id"`

	Title     string    `json:"title"`
	Abstract  string    `json:"abstract"`
	Authors   []string  `json:"authors"`
	Published time.Time `json:"published"`

	// PDFURL is the document link selected from the API entry's link
	// list. Always present: entries without one fail resolution.
	PDFURL string `json:"pdf_url"`
}

// AbsURL returns the abstract page URL for the paper.
func (p Paper) AbsURL() string {
	return "https://arxiv.org/abs/" + p.ID
}
