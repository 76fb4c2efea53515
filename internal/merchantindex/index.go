// Package merchantindex maps canonical merchant names to category tags. The index is
// loaded once at startup and is read-only afterwards.
package merchantindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Entry is one category and the merchant names filed under it.
type Entry struct {
	Category  string
	Merchants []string
}

// Index is an ordered category -> merchants mapping. The zero value is an empty index.
type Index struct {
	entries []Entry
}

// New builds an index from entries in the given order.
func New(entries ...Entry) *Index {
	return &Index{entries: entries}
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{}
}

// Len returns the number of categories.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Lookup returns the category whose merchant list has an entry containing merchant,
// compared case-insensitively. When several categories match, the last one in
// document order wins. An empty merchant never matches.
func (ix *Index) Lookup(merchant string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(merchant))
	if ix == nil || needle == "" {
		return "", false
	}
	var category string
	found := false
	for _, e := range ix.entries {
		for _, m := range e.Merchants {
			if strings.Contains(strings.ToLower(m), needle) {
				category = e.Category
				found = true
				break
			}
		}
	}
	return category, found
}

// Decode reads a JSON object of the form {"Category": ["merchant", ...], ...},
// keeping the categories in document order.
func Decode(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	ix := &Index{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading category: %w", err)
		}
		category, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected category name, got %v", tok)
		}

		var merchants []string
		if err := dec.Decode(&merchants); err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		ix.entries = append(ix.entries, Entry{Category: category, Merchants: merchants})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ix, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("unexpected end of merchant index")
		}
		return fmt.Errorf("reading merchant index: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q in merchant index, got %v", want, tok)
	}
	return nil
}
