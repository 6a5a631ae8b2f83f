// Package extract turns raw syllabus text into normalized deadline records.
//
// The engine first attempts the structured syllabus schema; when the text
// is not a recognized document it falls through to an ordered cascade of
// lexical patterns. Both paths classify types, normalize dates to the
// canonical YYYY-MM-DD form, and suppress duplicates within the call.
// Malformed input degrades to fewer or zero results; extraction never
// fails.
package extract

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/htran/syllabuscal/internal/model"
)

// Extract parses text and returns the deadlines found, possibly none.
// Dates carry the current real-world year; the engine never infers a year
// from context, which is a stated limitation of the product.
func Extract(text string) []model.Deadline {
	return ExtractYear(text, time.Now().Year())
}

// ExtractYear is Extract with the implied year pinned, for callers that
// need deterministic output.
func ExtractYear(text string, year int) []model.Deadline {
	if deadlines, ok := extractStructured(text, year); ok {
		return deadlines
	}
	return extractPatterns(text, year)
}

// capitalize upper-cases the first letter of a title.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
