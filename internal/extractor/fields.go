package extractor

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/smstxn/internal/lexicon"
	"github.com/cleared-dev/smstxn/internal/model"
)

var (
	debitWords  = []string{"spent", "debited", "payment", "used at", "charged", "sent", "debit"}
	creditWords = []string{"credited", "received", "refund", "reversed", "credit"}
)

// Type returns Debit or Credit from keyword presence. Debit is checked first.
func Type(lower string) model.TransactionType {
	switch {
	case containsAny(lower, debitWords):
		return model.TypeDebit
	case containsAny(lower, creditWords):
		return model.TypeCredit
	default:
		return ""
	}
}

// Bank returns the first known bank name in text, upper-cased.
func Bank(text string, lex *lexicon.Lexicon) string {
	if lex.BankPattern == nil {
		return ""
	}
	m := lex.BankPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// cardRules are evaluated in order; the first match names the card type.
var cardRules = []struct {
	pattern *regexp.Regexp
	card    model.CardType
}{
	{regexp.MustCompile(`(?i)Credit Card`), model.CardCredit},
	{regexp.MustCompile(`(?i)Debit Card`), model.CardDebit},
	{regexp.MustCompile(`(?i)\b(Avl Lmt|Available Limit|Avlbl Lmt|avl limit)\b`), model.CardCredit},
	{regexp.MustCompile(`(?i)Avl Bal`), model.CardDebit},
	{regexp.MustCompile(`(?i)Card`), model.CardGeneric},
}

// Card returns the card type named in text.
func Card(text string) model.CardType {
	for _, r := range cardRules {
		if r.pattern.MatchString(text) {
			return r.card
		}
	}
	return ""
}

// modeKeywords in priority order.
var modeKeywords = []struct {
	keyword string
	mode    model.Mode
}{
	{"upi", model.ModeUPI},
	{"imps", model.ModeIMPS},
	{"neft", model.ModeNEFT},
	{"rtgs", model.ModeRTGS},
	{"netbanking", model.ModeNetBanking},
	{"wallet", model.ModeWallet},
	{"card", model.ModeCardPayment},
}

// Mode returns the payment rail. A detected card type takes precedence.
func Mode(lower string, card model.CardType) model.Mode {
	if card != "" {
		return model.Mode(card)
	}
	for _, k := range modeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.mode
		}
	}
	return ""
}

var referencePattern = regexp.MustCompile(`(?i)(?:Ref No\.?|UPI Ref|Transaction Reference Number)\s?(\d+)`)

// Reference returns the digits following a reference label.
func Reference(text string) string {
	if m := referencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// Category returns the keyword category for lower-cased text. Categories are
// scanned in table order and a later match replaces an earlier one.
func Category(lower string, categories []lexicon.Category) string {
	var category string
	for _, c := range categories {
		if containsAny(lower, c.Keywords) {
			category = c.Name
		}
	}
	return category
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
