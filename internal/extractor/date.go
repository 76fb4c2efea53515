package extractor

import (
	"regexp"
	"time"
)

// datePatterns locate a date-shaped substring: 15/03/25 or 15-03-2025, 15.03.25,
// 15MAR25, MAR1525, 150325 and 15-Mar-25. The first pattern that matches anywhere
// in the text wins, regardless of position.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2}[-/]\d{2}[-/]\d{2,4})`),
	regexp.MustCompile(`(\d{2}\.\d{2}\.\d{2,4})`),
	regexp.MustCompile(`(\d{2}[A-Za-z]{3}\d{2,4})`),
	regexp.MustCompile(`([A-Za-z]{3}\d{2}\d{2,4})`),
	regexp.MustCompile(`(\d{6})`),
	regexp.MustCompile(`(\d{2}[/.-][A-Za-z]{3}[/.-]\d{2,4})`),
}

// dateLayouts are tried in order against the matched substring and the LAST one
// that parses is kept. Month-first layouts come before day-first ones so an
// ambiguous date such as 12-04-25 resolves day-first.
var dateLayouts = []string{
	"01/02/06", "01/02/2006",
	"01-02-06", "01-02-2006",
	"01.02.06", "01.02.2006",
	"Jan0206", "Jan022006",

	"02/01/06", "02/01/2006",
	"02-01-06", "02-01-2006",
	"02.01.06", "02.01.2006",
	"02Jan06", "02Jan2006",
	"020106",
	"02/Jan/06", "02/Jan/2006",
	"02-Jan-06", "02-Jan-2006",
	"02.Jan.06", "02.Jan.2006",
}

// Date returns the transaction date found in text.
func Date(text string) (time.Time, bool) {
	var raw string
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			raw = m[1]
			break
		}
	}
	if raw == "" {
		return time.Time{}, false
	}

	var (
		parsed time.Time
		ok     bool
	)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			parsed, ok = t, true
		}
	}
	return parsed, ok
}
