// Package extractor pulls structured fields out of a transactional message. Each
// field has its own pure function; Extractor runs them all and never fails: a field
// that is not found is left empty.
package extractor

import (
	"slices"
	"strings"

	"github.com/cleared-dev/smstxn/internal/lexicon"
	"github.com/cleared-dev/smstxn/internal/merchant"
	"github.com/cleared-dev/smstxn/internal/model"
)

// Extractor assembles a TransactionRecord from the individual field extractions.
type Extractor struct {
	lex      *lexicon.Lexicon
	resolver *merchant.Resolver
}

// New creates an Extractor.
func New(lex *lexicon.Lexicon, resolver *merchant.Resolver) *Extractor {
	return &Extractor{lex: lex, resolver: resolver}
}

// Extract returns every field it can find in text. Callers are expected to have
// classified text as transactional first.
func (e *Extractor) Extract(text string) *model.TransactionRecord {
	lower := strings.ToLower(text)

	rec := &model.TransactionRecord{
		Amount:          Amount(text),
		Type:            Type(lower),
		BankName:        Bank(text, e.lex),
		CardType:        Card(text),
		ReferenceNumber: Reference(text),
	}
	if d, ok := Date(text); ok {
		rec.Date = d
	}
	rec.Mode = Mode(lower, rec.CardType)

	display, indexTag := e.resolveMerchant(text, rec.Type)
	rec.Merchant = display
	rec.Tags = Tags(indexTag, Category(lower, e.lex.Categories))

	// Runs after merchant resolution: direction is taken from verbs only.
	if rec.Type == "" && rec.CardType == model.CardDebit {
		rec.Type = model.TypeDebit
	}
	return rec
}

// resolveMerchant picks the first candidate with a usable display name: the
// direction capture for the transaction type, then the " at "/"IN*" capture,
// then the first "at"/"to" phrase.
func (e *Extractor) resolveMerchant(text string, typ model.TransactionType) (display, tag string) {
	var direction string
	switch typ {
	case model.TypeCredit:
		direction = Sender(text)
	case model.TypeDebit:
		direction = Recipient(text)
	}

	for _, candidate := range []string{direction, FallbackMerchant(text), EntityMerchant(text)} {
		if display, tag = e.resolver.Resolve(candidate); display != "" {
			return display, tag
		}
	}
	return "", ""
}

// Tags returns the non-empty, distinct labels in order.
func Tags(labels ...string) []string {
	var tags []string
	for _, l := range labels {
		if l == "" || slices.Contains(tags, l) {
			continue
		}
		tags = append(tags, l)
	}
	return tags
}
