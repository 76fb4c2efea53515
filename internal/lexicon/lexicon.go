// Package lexicon holds the read-only rule tables that drive classification and
// extraction: trigger patterns, bank names, sender tokens, category keywords and
// stopwords.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// Category is a spending category and the keywords that select it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// document mirrors lexicon.yaml.
type document struct {
	Transactional    []string          `yaml:"transactional_patterns"`
	NonTransactional []string          `yaml:"non_transactional_patterns"`
	Personal         []string          `yaml:"personal_patterns"`
	Banks            []string          `yaml:"banks"`
	Senders          []string          `yaml:"transactional_senders"`
	Categories       []Category        `yaml:"categories"`
	BoundaryTokens   []string          `yaml:"boundary_tokens"`
	Stopwords        map[string]string `yaml:"stopwords"`
}

// Lexicon is the compiled rule set. It is never mutated after construction and is
// safe for concurrent use.
type Lexicon struct {
	Transactional    []*regexp.Regexp // case-insensitive
	NonTransactional []*regexp.Regexp // applied to lower-cased text
	Personal         []*regexp.Regexp // applied to lower-cased text
	Banks            []string
	BankPattern      *regexp.Regexp
	Senders          []string // upper-cased
	Categories       []Category
	BoundaryTokens   map[string]struct{}

	stopwords map[string]map[string]struct{}
}

var defaultLexicon = mustParse(defaultYAML)

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return defaultLexicon
}

// LoadFile reads and compiles a lexicon YAML file.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return Parse(data)
}

// Parse compiles a lexicon from YAML.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}

	lex := &Lexicon{
		Banks:          doc.Banks,
		Categories:     doc.Categories,
		BoundaryTokens: make(map[string]struct{}, len(doc.BoundaryTokens)),
		stopwords:      make(map[string]map[string]struct{}, len(doc.Stopwords)),
	}

	var err error
	if lex.Transactional, err = compileAll(doc.Transactional, "(?i)"); err != nil {
		return nil, fmt.Errorf("transactional patterns: %w", err)
	}
	if lex.NonTransactional, err = compileAll(doc.NonTransactional, ""); err != nil {
		return nil, fmt.Errorf("non-transactional patterns: %w", err)
	}
	if lex.Personal, err = compileAll(doc.Personal, ""); err != nil {
		return nil, fmt.Errorf("personal patterns: %w", err)
	}

	if len(doc.Banks) > 0 {
		quoted := make([]string, len(doc.Banks))
		for i, b := range doc.Banks {
			quoted[i] = regexp.QuoteMeta(b)
		}
		lex.BankPattern, err = regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("bank pattern: %w", err)
		}
	}

	for _, s := range doc.Senders {
		lex.Senders = append(lex.Senders, strings.ToUpper(s))
	}
	for _, tok := range doc.BoundaryTokens {
		lex.BoundaryTokens[strings.ToLower(tok)] = struct{}{}
	}
	for lang, words := range doc.Stopwords {
		set := make(map[string]struct{})
		for _, w := range strings.Fields(words) {
			set[strings.ToLower(w)] = struct{}{}
		}
		lex.stopwords[strings.ToLower(lang)] = set
	}

	return lex, nil
}

// Stopwords returns the stopword set for a language such as "english".
func (l *Lexicon) Stopwords(language string) (map[string]struct{}, error) {
	set, ok := l.stopwords[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("no stopwords for language %q", language)
	}
	return set, nil
}

func compileAll(patterns []string, flags string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(flags + p)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func mustParse(data []byte) *Lexicon {
	lex, err := Parse(data)
	if err != nil {
		panic("built-in lexicon: " + err.Error())
	}
	return lex
}
