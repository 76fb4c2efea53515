package extractor

import (
	"regexp"
	"strings"
)

// recipientPatterns capture where money went. First match wins.
var recipientPatterns = []*regexp.Regexp{
	// "spent on your SBI Credit Card at Alliance Landline Bill on ..."
	regexp.MustCompile(`(?i)spent on your .*? at (.*?) on`),
	// "spent using ICICI Bank Card XX2010 on 09-Mar-25 on IND*Amazon.in - ..."
	regexp.MustCompile(`(?i)spent using .*? on \d{2}-\w{3}-\d{2,4} on (.*?)\s+-`),
	// "Sent Rs.100.00 from Kotak Bank AC X4726 to paytm-8727353@ptybl ..."
	regexp.MustCompile(`(?i)sent (?:Rs\.?|INR|₹)?\s*\d{1,3}(?:,\d{2,3})*(?:\.\d{1,2})? from .*? to ([\w@.-]+)`),
	// "... debited for INR 3740.00 ... Transaction Reference Number 123 - Powered by Juspay"
	regexp.MustCompile(`(?i)debited for .*? Transaction Reference Number.*? - ([\w\s]+)`),
	// "transaction done at 42281386"
	regexp.MustCompile(`(?i)done at ([\w*.-]+)`),
}

// senderPatterns capture where money came from. First match wins.
var senderPatterns = []*regexp.Regexp{
	// "Received Rs.3740.00 in your Kotak Bank AC X4726 from amazonpay@icici"
	regexp.MustCompile(`(?i)received .*? in your .*? from ([\w@.-]+)`),
	// "Rs.5000 credited to your account by NEFT-ACME"
	regexp.MustCompile(`(?i)credited to .*? by ([\w@.-]+)`),
	// "Refund from Flipkart received"
	regexp.MustCompile(`(?i)refund from ([\w@.-]+)`),
}

// fallbackPattern takes up to two short words after " at " or "IN*".
var fallbackPattern = regexp.MustCompile(`(?i)(?:\sat\s|in\*)([A-Za-z0-9]*\s?-?\s?[A-Za-z0-9]*\s?-?\s?)`)

var (
	entityStart = regexp.MustCompile(`(?i)\b(at|from|to|via|through|with)\s+`)
	entityEnd   = regexp.MustCompile(`(?i)\s+\b(?:at|from|to|via|through|with)`)
)

// Recipient returns the payee captured by the first matching recipient pattern.
func Recipient(text string) string {
	return firstCapture(recipientPatterns, text)
}

// Sender returns the payer captured by the first matching sender pattern.
func Sender(text string) string {
	return firstCapture(senderPatterns, text)
}

// FallbackMerchant returns the text following " at " or "IN*".
func FallbackMerchant(text string) string {
	if m := fallbackPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// EntityMerchant returns the first phrase introduced by "at" or "to", running up to
// the next preposition or the end of the text.
func EntityMerchant(text string) string {
	pos := 0
	for pos < len(text) {
		loc := entityStart.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return ""
		}
		prep := strings.ToLower(text[pos+loc[2] : pos+loc[3]])
		start := pos + loc[1]
		if start >= len(text) {
			return ""
		}

		end := len(text)
		if e := entityEnd.FindStringIndex(text[start+1:]); e != nil {
			end = start + 1 + e[0]
		}
		entity := strings.TrimSpace(text[start:end])
		if (prep == "at" || prep == "to") && entity != "" {
			return entity
		}
		pos = end
	}
	return ""
}

func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
