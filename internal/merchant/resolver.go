// Package merchant turns raw merchant captures into display names and tags them
// from the merchant index.
package merchant

import (
	"strings"
	"unicode"

	"github.com/cleared-dev/smstxn/internal/merchantindex"
)

// maxDisplayTokens caps the display name length in words.
const maxDisplayTokens = 2

// Resolver is a pure function of its inputs; it holds only read-only tables.
type Resolver struct {
	stopwords map[string]struct{}
	boundary  map[string]struct{}
	index     *merchantindex.Index
}

// NewResolver creates a Resolver. index may be empty but not nil.
func NewResolver(stopwords, boundary map[string]struct{}, index *merchantindex.Index) *Resolver {
	if index == nil {
		index = merchantindex.Empty()
	}
	return &Resolver{stopwords: stopwords, boundary: boundary, index: index}
}

// Display truncates raw at the first stopword or boundary token and keeps at most
// two words. Purely numeric input is an account or card tail, not a name, and
// yields "".
func (r *Resolver) Display(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || IsNumeric(raw) {
		return ""
	}

	var kept []string
	for _, tok := range strings.Fields(raw) {
		tok = strings.TrimRight(tok, ".,;:!")
		if tok == "" {
			continue
		}
		word := strings.ToLower(tok)
		if _, ok := r.stopwords[word]; ok {
			break
		}
		if _, ok := r.boundary[word]; ok {
			break
		}
		kept = append(kept, tok)
		if len(kept) == maxDisplayTokens {
			break
		}
	}
	return strings.Join(kept, " ")
}

// Tag returns the merchant index category for a display name.
func (r *Resolver) Tag(display string) (string, bool) {
	return r.index.Lookup(display)
}

// Resolve returns the display name and, if found, its index category.
func (r *Resolver) Resolve(raw string) (display, tag string) {
	display = r.Display(raw)
	tag, _ = r.Tag(display)
	return display, tag
}

// IsNumeric reports whether s is non-empty and made only of digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}
