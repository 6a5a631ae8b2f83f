package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/syllabuscal/internal/model"
)

func TestExtractYearFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.Deadline
	}{
		{
			name:  "keyword with month name",
			input: "Math exam on December 15",
			want: []model.Deadline{
				{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
			},
		},
		{
			name:  "synonym collapses to assignment",
			input: "History essay due November 20",
			want: []model.Deadline{
				{Title: "History essay", Date: "2025-11-20", Type: model.TypeAssignment},
			},
		},
		{
			name:  "numeric slash date",
			input: "assignment 5/20",
			want: []model.Deadline{
				{Title: "Assignment", Date: "2025-05-20", Type: model.TypeAssignment},
			},
		},
		{
			name:  "slash date infers type from title",
			input: "quiz 12/15",
			want: []model.Deadline{
				{Title: "Quiz", Date: "2025-12-15", Type: model.TypeQuiz},
			},
		},
		{
			name:  "bare keyword line",
			input: "midterm on Oct 3",
			want: []model.Deadline{
				{Title: "Midterm", Date: "2025-10-03", Type: model.TypeExam},
			},
		},
		{
			name:  "generic fallback classifies from title",
			input: "final project presentation due may 5",
			want: []model.Deadline{
				{Title: "Final project presentation", Date: "2025-05-05", Type: model.TypeExam},
			},
		},
		{
			name:  "two deadlines on separate lines",
			input: "Math exam on December 15\nEssay due November 20",
			want: []model.Deadline{
				{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
				{Title: "Essay", Date: "2025-11-20", Type: model.TypeAssignment},
			},
		},
		{
			name:  "no recognizable pattern",
			input: "hello world",
			want:  []model.Deadline{},
		},
		{
			name:  "day out of range is discarded",
			input: "essay due November 45",
			want:  []model.Deadline{},
		},
		{
			name:  "unknown month name is discarded",
			input: "paper due Octember 12",
			want:  []model.Deadline{},
		},
		{
			name:  "numeric month out of range is discarded",
			input: "report 13/5",
			want:  []model.Deadline{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractYear(tt.input, 2025)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractYearDeduplicatesWithinCall(t *testing.T) {
	got := ExtractYear("Quiz on Nov 30\nquiz on Nov 30", 2025)

	require.Len(t, got, 1)
	assert.Equal(t, "Quiz", got[0].Title)
	assert.Equal(t, "2025-11-30", got[0].Date)
	assert.Equal(t, model.TypeQuiz, got[0].Type)
}

func TestExtractYearKeysAreUniquePerCall(t *testing.T) {
	input := "Math exam on December 15\n" +
		"math exam on December 15\n" +
		"Essay due November 20\n" +
		"quiz 12/15"

	got := ExtractYear(input, 2025)

	seen := make(map[string]bool)
	for _, d := range got {
		assert.False(t, seen[d.Key()], "duplicate key %q", d.Key())
		seen[d.Key()] = true
	}
}

func TestExtractUsesCurrentYear(t *testing.T) {
	got := Extract("Math exam on December 15")

	require.Len(t, got, 1)
	assert.Regexp(t, `^\d{4}-12-15$`, got[0].Date)
}
