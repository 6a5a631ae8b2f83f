package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/htran/syllabuscal/internal/model"
)

// candidate is a raw extraction hit before classification, normalization,
// and deduplication.
type candidate struct {
	title   string
	rawType string
	month   time.Month
	day     int
	ok      bool // month token resolved
}

// pattern pairs a lexical matcher with the function that turns one of its
// matches into a candidate.
type pattern struct {
	re      *regexp.Regexp
	extract func(m []string) candidate
}

// deadlineKeywords is the explicit category vocabulary recognized inside
// title phrases.
const deadlineKeywords = `exam|quiz|test|assignment|project|homework|paper|essay|midterm|final`

// cascade is the ordered set of lexical patterns applied to free text. All
// patterns run against the full input and every non-overlapping occurrence
// is collected; ordering only determines which duplicate wins, since
// earlier candidates are kept and later ones are dropped by the dedup rule.
// Title fragments bind to their date or keyword only across same-line
// whitespace, so statements on separate lines stay separate candidates.
var cascade = []pattern{
	// "<title> M/D": numeric slash date.
	{
		re: regexp.MustCompile(`(?i)(.+?)[ \t]*(\d{1,2})/(\d{1,2})`),
		extract: func(m []string) candidate {
			monthNum, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return candidate{
				title:   strings.TrimSpace(m[1]),
				rawType: model.TypeAssignment,
				month:   time.Month(monthNum),
				day:     day,
				ok:      monthNum >= 1 && monthNum <= 12,
			}
		},
	},
	// "<title> <keyword> on|due|by <month> <day>".
	{
		re: regexp.MustCompile(`(?i)(.+?)[ \t]*(` + deadlineKeywords + `)\s+(?:on|due|by)\s+([a-z]+)\s+(\d{1,2})`),
		extract: func(m []string) candidate {
			month, ok := monthFromName(m[3])
			day, _ := strconv.Atoi(m[4])
			return candidate{
				title:   strings.TrimSpace(m[1]) + " " + m[2],
				rawType: strings.ToLower(m[2]),
				month:   month,
				day:     day,
				ok:      ok,
			}
		},
	},
	// "<keyword> on|due|by <month> <day>": the keyword alone is the title.
	// Anchored to line starts so a keyword inside a longer title phrase does
	// not also surface as a bare candidate.
	{
		re: regexp.MustCompile(`(?im)^\s*(` + deadlineKeywords + `)\s+(?:on|due|by)\s+([a-z]+)\s+(\d{1,2})`),
		extract: func(m []string) candidate {
			month, ok := monthFromName(m[2])
			day, _ := strconv.Atoi(m[3])
			return candidate{
				title:   m[1],
				rawType: strings.ToLower(m[1]),
				month:   month,
				day:     day,
				ok:      ok,
			}
		},
	},
	// "<title> due|on|by <month> <day>": generic fallback, defaults to
	// assignment until the classifier inspects the title.
	{
		re: regexp.MustCompile(`(?i)(.+?)\s+(?:due|on|by)\s+([a-z]+)\s+(\d{1,2})`),
		extract: func(m []string) candidate {
			month, ok := monthFromName(m[2])
			day, _ := strconv.Atoi(m[3])
			return candidate{
				title:   strings.TrimSpace(m[1]),
				rawType: model.TypeAssignment,
				month:   month,
				day:     day,
				ok:      ok,
			}
		},
	},
}

// extractPatterns scans free text against the cascade and returns the
// normalized, deduplicated deadlines in the order first produced.
// Unresolvable candidates are dropped silently.
func extractPatterns(text string, year int) []model.Deadline {
	deadlines := make([]model.Deadline, 0)
	seen := make(dedupSet)

	for _, p := range cascade {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			c := p.extract(m)
			if !c.ok || !validDay(c.day) {
				continue
			}

			d := model.Deadline{
				Title: capitalize(c.title),
				Date:  normalizeDate(year, c.month, c.day),
				Type:  classifyType(c.rawType, c.title),
			}
			if !seen.add(d) {
				continue
			}
			deadlines = append(deadlines, d)
		}
	}

	return deadlines
}
