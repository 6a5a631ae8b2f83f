package model

import (
	"fmt"
	"strings"
	"time"
)

// Canonical deadline type constants. Every stored deadline carries exactly
// one of these values.
const (
	TypeAssignment = "assignment"
	TypeExam       = "exam"
	TypeQuiz       = "quiz"
	TypeProject    = "project"
)

// DeadlineTypes lists the closed set of canonical types.
var DeadlineTypes = []string{TypeAssignment, TypeExam, TypeQuiz, TypeProject}

// Deadline is a single academic due-date record produced by the extraction
// engine. Deadlines live only for the current session.
type Deadline struct {
	// ID is the internal unique identifier, assigned by the store on append.
	ID string `json:"id" db:"id"`

	// Title is the display name, with its first letter upper-cased.
	Title string `json:"title" db:"title"`

	// Date is the canonical calendar date as a zero-padded YYYY-MM-DD
	// string. It is built from (year, month, day) parts directly, never
	// reformatted from a zoned timestamp.
	Date string `json:"date" db:"date"`

	// Type is one of the Type* constants.
	Type string `json:"type" db:"type"`

	// Course is an optional course label; empty when unknown.
	Course string `json:"course" db:"course"`
}

// Key returns the per-extraction-call identity of a deadline: its date plus
// the lower-cased title. Two candidates with the same key are duplicates
// within one call.
func (d Deadline) Key() string {
	return d.Date + "|" + strings.ToLower(d.Title)
}

// DateKey formats a calendar date in the canonical zero-padded form shared
// by the extractor output and the calendar lookups, so plain string
// equality and lexicographic ordering work everywhere. The parts are used
// as-is with local-calendar semantics; no time zone is involved.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
