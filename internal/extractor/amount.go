package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches a currency marker followed by an amount, e.g. "Rs.1,234.50",
// "₹ 500", "INR 20", "debited by 75.5".
var amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|₹|inr|\$|aed)\s*([\d,]+(?:\.\d{1,2})?)|debited by\s*([\d,]+(?:\.\d{1,2})?)`)

// Amount returns the first currency-marked amount in text.
func Amount(text string) decimal.NullDecimal {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.NullDecimal{}
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
