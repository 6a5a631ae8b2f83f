package extract

import (
	"strings"

	"github.com/htran/syllabuscal/internal/model"
)

// classifyType maps a raw type token plus the candidate's title to one of
// the four canonical deadline types.
//
// Stage one only applies when the raw type is the cascade's neutral default
// ("assignment"): the title is inspected for a more specific category.
// Stage two collapses synonyms regardless of stage one, so "History essay"
// stays an assignment while "midterm" always becomes an exam.
func classifyType(raw, title string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	lower := strings.ToLower(title)

	if t == model.TypeAssignment {
		switch {
		case strings.Contains(lower, "exam"),
			strings.Contains(lower, "test"),
			strings.Contains(lower, "midterm"),
			strings.Contains(lower, "final"):
			t = model.TypeExam
		case strings.Contains(lower, "quiz"):
			t = model.TypeQuiz
		case strings.Contains(lower, "project"),
			strings.Contains(lower, "presentation"):
			t = model.TypeProject
		}
	}

	return canonicalType(t)
}

// canonicalType collapses raw type synonyms into the closed canonical set.
// Tokens outside the known vocabulary fall back to "assignment" so that a
// stored deadline never carries an unknown type.
func canonicalType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.TypeExam, "test", "midterm", "final":
		return model.TypeExam
	case model.TypeQuiz:
		return model.TypeQuiz
	case model.TypeProject:
		return model.TypeProject
	case model.TypeAssignment, "homework", "paper", "essay":
		return model.TypeAssignment
	default:
		return model.TypeAssignment
	}
}
