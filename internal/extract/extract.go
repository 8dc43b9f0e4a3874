// Package extract scans paper documents for embedded arXiv citations.
package extract

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// citationPattern matches inline citations of the form arXiv:2406.11944
// with an optional version suffix. Group 1 is the bare identifier.
var citationPattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5})(v\d+)?`)

// Citations extracts the arXiv identifiers cited in the document at
// path. This is best-effort text scanning, not bibliographic parsing:
// it misses citations rendered as images or split across pages, and an
// unreadable or unparsable document yields an empty result rather than
// an error.
func Citations(path string) []string {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}

	return Scan(b.String())
}

// Scan collects the unique citation identifiers in text, version
// suffixes stripped. Duplicate occurrences collapse; order follows
// first appearance.
func Scan(text string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
