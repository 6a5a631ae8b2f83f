package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/htran/syllabuscal/internal/model"
)

func TestClassifyTypeVocabularyIsTotal(t *testing.T) {
	vocabulary := []string{
		"exam", "quiz", "test", "assignment", "project",
		"homework", "paper", "essay", "midterm", "final",
	}
	canonical := map[string]bool{
		model.TypeAssignment: true,
		model.TypeExam:       true,
		model.TypeQuiz:       true,
		model.TypeProject:    true,
	}

	for _, raw := range vocabulary {
		got := classifyType(raw, "some title")
		assert.True(t, canonical[got], "classifyType(%q) = %q", raw, got)

		// Idempotent: a canonical type maps to itself.
		assert.Equal(t, got, classifyType(got, "some title"))
	}
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		raw   string
		title string
		want  string
	}{
		// Title inspection only applies to the neutral default.
		{raw: "assignment", title: "Biology midterm", want: model.TypeExam},
		{raw: "assignment", title: "Final review", want: model.TypeExam},
		{raw: "assignment", title: "Pop quiz", want: model.TypeQuiz},
		{raw: "assignment", title: "Group presentation", want: model.TypeProject},
		{raw: "assignment", title: "Capstone project", want: model.TypeProject},
		{raw: "assignment", title: "Problem set 3", want: model.TypeAssignment},

		// Synonym collapse runs regardless of the title.
		{raw: "test", title: "whatever", want: model.TypeExam},
		{raw: "midterm", title: "whatever", want: model.TypeExam},
		{raw: "final", title: "whatever", want: model.TypeExam},
		{raw: "homework", title: "whatever", want: model.TypeAssignment},
		{raw: "paper", title: "whatever", want: model.TypeAssignment},
		{raw: "essay", title: "History essay", want: model.TypeAssignment},

		// A non-default raw type wins over the title.
		{raw: "homework", title: "Final exam", want: model.TypeAssignment},
		{raw: "quiz", title: "Project kickoff", want: model.TypeQuiz},

		// Case and whitespace are tolerated.
		{raw: "  Midterm ", title: "", want: model.TypeExam},
		{raw: "ESSAY", title: "", want: model.TypeAssignment},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyType(tt.raw, tt.title),
			"classifyType(%q, %q)", tt.raw, tt.title)
	}
}

func TestCanonicalTypeUnknownFallsBack(t *testing.T) {
	assert.Equal(t, model.TypeAssignment, canonicalType("lecture"))
	assert.Equal(t, model.TypeAssignment, canonicalType(""))
}
