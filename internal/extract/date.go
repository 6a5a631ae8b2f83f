package extract

import (
	"strings"
	"time"

	"github.com/htran/syllabuscal/internal/model"
)

// monthNames resolves month tokens found in free text, full names and
// common abbreviations included.
var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// monthAbbrevs resolves the month tokens used in syllabus weekly-topic date
// strings. Keys are three-letter abbreviations plus "sept"; lookups use the
// first four characters of the token, lower-cased.
var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August,
	"sep": time.September, "sept": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// monthFromName resolves a month name token from free text.
func monthFromName(token string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(token)]
	return m, ok
}

// monthFromAbbrev resolves an abbreviated month token from a weekly-topic
// date string. Only the first four characters are considered, so "Sept 12"
// resolves while "October 3" does not; that matches the abbreviated style
// the syllabus schema uses.
func monthFromAbbrev(token string) (time.Month, bool) {
	t := strings.ToLower(token)
	if len(t) > 4 {
		t = t[:4]
	}
	m, ok := monthAbbrevs[t]
	return m, ok
}

// normalizeDate builds the canonical YYYY-MM-DD date string from calendar
// parts. The parts are formatted directly; the value never passes through a
// zoned timestamp, so the same input yields the same string in every time
// zone. The year is whatever the caller supplied; the engine never infers
// one from context.
func normalizeDate(year int, month time.Month, day int) string {
	return model.DateKey(year, month, day)
}

// validDay reports whether day is a plausible day-of-month. Days outside
// this range discard the candidate; they never error.
func validDay(day int) bool {
	return day >= 1 && day <= 31
}
