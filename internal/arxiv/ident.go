package arxiv

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier indicates the input text contains nothing that
// looks like an arXiv identifier. This is a user-input problem, not an
// API fault.
var ErrInvalidIdentifier = errors.New("not a recognizable arXiv identifier")

// identPattern matches an arXiv identifier embedded anywhere in the
// input: either the legacy category form (math.GT/0309136) or the
// modern form (2406.11944), with an optional version suffix. Group 1
// is the identifier without the version.
var identPattern = regexp.MustCompile(`([a-z-]+(\.[A-Z]+)?/\d{7}|\d{4}\.\d{4,5})(v\d+)?`)

// Normalize extracts the canonical identifier from free-form user input.
// Accepted forms:
//
//	https://arxiv.org/abs/2406.11944
//	arXiv:2406.11944v2
//	2406.11944
//	math.GT/0309136v1
//
// The version suffix, if present, is dropped so the same paper always
// normalizes to the same key regardless of which revision was pasted.
func Normalize(raw string) (string, error) {
	m := identPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", ErrInvalidIdentifier
	}
	return m[1], nil
}
