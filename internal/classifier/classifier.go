// Package classifier decides whether a notification describes a money movement.
package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cleared-dev/smstxn/internal/lexicon"
)

// Rule names, in evaluation order.
const (
	RuleKnownSender      = "known-sender"
	RuleShortCodeSender  = "short-code-sender"
	RuleRoutedHeader     = "routed-header-sender"
	RulePersonalSender   = "personal-name-sender"
	RulePersonalContent  = "personal-content"
	RulePromotional      = "non-transactional-content"
	RuleTransactional    = "transactional-content"
	RuleNoTransactionCue = "no-transaction-cue"
)

// shortCodeMaxLen is the longest sender treated as a numeric short code.
const shortCodeMaxLen = 6

// personalNameMinLen is the shortest all-letter sender treated as a contact name.
const personalNameMinLen = 4

// routedHeader matches regional SMS routing headers such as "VM-HDFCBK".
var routedHeader = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{6}$`)

// Decision is the outcome for one message and the rule that produced it.
type Decision struct {
	Transactional bool
	Rule          string
}

// subject is one message prepared for rule evaluation.
type subject struct {
	sender string // upper-cased, "" when unknown
	lower  string
}

// rule is one step of the cascade. The first rule whose match returns true decides.
type rule struct {
	name          string
	senderOnly    bool
	match         func(s subject) bool
	transactional bool
}

// Classifier evaluates an ordered rule cascade: sender signals first, then
// rejection cues, then acceptance cues.
type Classifier struct {
	rules []rule
}

// New builds a Classifier over a lexicon.
func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{rules: []rule{
		{name: RuleKnownSender, senderOnly: true, transactional: true, match: func(s subject) bool {
			for _, tok := range lex.Senders {
				if strings.Contains(s.sender, tok) {
					return true
				}
			}
			return false
		}},
		{name: RuleShortCodeSender, senderOnly: true, transactional: true, match: func(s subject) bool {
			return utf8.RuneCountInString(s.sender) <= shortCodeMaxLen && strings.IndexFunc(s.sender, unicode.IsDigit) >= 0
		}},
		{name: RuleRoutedHeader, senderOnly: true, transactional: true, match: func(s subject) bool {
			return routedHeader.MatchString(s.sender)
		}},
		{name: RulePersonalSender, senderOnly: true, transactional: false, match: func(s subject) bool {
			return utf8.RuneCountInString(s.sender) >= personalNameMinLen && isAlpha(s.sender)
		}},
		{name: RulePersonalContent, transactional: false, match: func(s subject) bool {
			return anyMatch(lex.Personal, s.lower)
		}},
		{name: RulePromotional, transactional: false, match: func(s subject) bool {
			return anyMatch(lex.NonTransactional, s.lower)
		}},
		{name: RuleTransactional, transactional: true, match: func(s subject) bool {
			return anyMatch(lex.Transactional, s.lower)
		}},
	}}
}

// Decide classifies text. sender may be "" when unknown.
func (c *Classifier) Decide(text, sender string) Decision {
	s := subject{
		sender: strings.ToUpper(strings.TrimSpace(sender)),
		lower:  strings.ToLower(text),
	}
	for _, r := range c.rules {
		if r.senderOnly && s.sender == "" {
			continue
		}
		if r.match(s) {
			return Decision{Transactional: r.transactional, Rule: r.name}
		}
	}
	return Decision{Transactional: false, Rule: RuleNoTransactionCue}
}

// Classify reports whether text is transactional.
func (c *Classifier) Classify(text, sender string) bool {
	return c.Decide(text, sender).Transactional
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return s != ""
}
