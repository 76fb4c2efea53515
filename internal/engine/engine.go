// Package engine wires the lexicon, merchant index, classifier and extractor into
// the two public operations: ClassifyMessage and ExtractTransaction.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/smstxn/internal/classifier"
	"github.com/cleared-dev/smstxn/internal/config"
	"github.com/cleared-dev/smstxn/internal/extractor"
	"github.com/cleared-dev/smstxn/internal/lexicon"
	"github.com/cleared-dev/smstxn/internal/merchant"
	"github.com/cleared-dev/smstxn/internal/merchantindex"
	"github.com/cleared-dev/smstxn/internal/model"
)

// Engine is immutable after Build and safe for concurrent use.
type Engine struct {
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
	log        zerolog.Logger
}

// Build loads the rule tables and the merchant index. A merchant index failure is
// logged and tolerated; lexicon and stopword failures are returned.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Engine, error) {
	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		var err error
		if lex, err = lexicon.LoadFile(cfg.Lexicon.Path); err != nil {
			return nil, fmt.Errorf("loading lexicon: %w", err)
		}
	}

	lang := cfg.Lexicon.StopwordLanguage
	if lang == "" {
		lang = "english"
	}
	stopwords, err := lex.Stopwords(lang)
	if err != nil {
		return nil, fmt.Errorf("loading stopwords: %w", err)
	}

	ix := merchantindex.Load(ctx, cfg.IndexSource(), cfg.MerchantIndex.Timeout, log)
	return New(lex, stopwords, ix, log), nil
}

// New assembles an Engine from already-loaded parts.
func New(lex *lexicon.Lexicon, stopwords map[string]struct{}, ix *merchantindex.Index, log zerolog.Logger) *Engine {
	resolver := merchant.NewResolver(stopwords, lex.BoundaryTokens, ix)
	return &Engine{
		classifier: classifier.New(lex),
		extractor:  extractor.New(lex, resolver),
		log:        log,
	}
}

// Decide classifies a message and reports which rule decided it.
func (e *Engine) Decide(text, sender string) classifier.Decision {
	d := e.classifier.Decide(text, sender)
	e.log.Debug().
		Str("sender", sender).
		Str("rule", d.Rule).
		Bool("transactional", d.Transactional).
		Msg("classified message")
	return d
}

// ClassifyMessage reports whether a message is transactional. sender may be "".
func (e *Engine) ClassifyMessage(text, sender string) bool {
	return e.Decide(text, sender).Transactional
}

// ExtractTransaction returns the extracted record, or false when the message is
// not transactional. It never fails.
func (e *Engine) ExtractTransaction(text, sender string) (*model.TransactionRecord, bool) {
	_, rec := e.Analyze(text, sender)
	return rec, rec != nil
}

// Analyze classifies a message and, when it is transactional, extracts its record.
// The record is nil for rejected messages.
func (e *Engine) Analyze(text, sender string) (classifier.Decision, *model.TransactionRecord) {
	d := e.Decide(text, sender)
	if !d.Transactional {
		return d, nil
	}
	rec := e.extractor.Extract(text)
	e.log.Debug().
		Str("amount", rec.DisplayAmount()).
		Str("type", string(rec.Type)).
		Str("merchant", rec.Merchant).
		Strs("tags", rec.Tags).
		Msg("extracted transaction")
	return d, rec
}
