package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/syllabuscal/internal/model"
)

const sampleSyllabus = `{
	"course_name": "CS101",
	"tasks": [
		{"title": "HW1", "type": "Assignment", "week_number": 3},
		{"title": "Reading response", "type": "Homework", "week_number": 4}
	],
	"weekly_topics": [
		{"week": 3, "dates": "Mon, Oct 6; Wed, Oct 8"},
		{"week": 4, "dates": "Mon, Oct 13; Wed, Oct 15"}
	]
}`

func TestExtractYearSyllabusDocument(t *testing.T) {
	got := ExtractYear(sampleSyllabus, 2025)

	require.Len(t, got, 2)

	// The last date listed for the week is the deadline.
	assert.Equal(t, model.Deadline{
		Title:  "HW1",
		Date:   "2025-10-08",
		Type:   model.TypeAssignment,
		Course: "CS101",
	}, got[0])

	assert.Equal(t, model.Deadline{
		Title:  "Reading response",
		Date:   "2025-10-15",
		Type:   model.TypeAssignment,
		Course: "CS101",
	}, got[1])
}

func TestExtractStructuredMonthTokens(t *testing.T) {
	tests := []struct {
		name     string
		dates    string
		wantDate string
		wantHit  bool
	}{
		{name: "three letter abbreviation", dates: "Wed, Dec 3", wantDate: "2025-12-03", wantHit: true},
		{name: "sept maps to september", dates: "Tue, Sept 9", wantDate: "2025-09-09", wantHit: true},
		{name: "sep maps to september", dates: "Tue, Sep 9", wantDate: "2025-09-09", wantHit: true},
		{name: "full month name does not resolve", dates: "Fri, October 3", wantHit: false},
		{name: "day out of range is discarded", dates: "Mon, Oct 99", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{
				"tasks": [{"title": "Lab", "type": "Assignment", "week_number": 1}],
				"weekly_topics": [{"week": 1, "dates": "` + tt.dates + `"}]
			}`

			got, ok := extractStructured(doc, 2025)
			require.True(t, ok, "schema should be recognized")

			if !tt.wantHit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantDate, got[0].Date)
		})
	}
}

func TestExtractStructuredTypeNormalization(t *testing.T) {
	doc := `{
		"course_name": "HIST 210",
		"tasks": [
			{"title": "Unit test", "type": "Midterm", "week_number": 1},
			{"title": "Slides", "type": "Lecture", "week_number": 1}
		],
		"weekly_topics": [{"week": 1, "dates": "Mon, Nov 3; Wed, Nov 5"}]
	}`

	got, ok := extractStructured(doc, 2025)
	require.True(t, ok)
	require.Len(t, got, 2)

	assert.Equal(t, model.TypeExam, got[0].Type)
	// Tokens outside the vocabulary collapse to assignment.
	assert.Equal(t, model.TypeAssignment, got[1].Type)
}

func TestExtractStructuredSkipsUnmatchedWeeks(t *testing.T) {
	doc := `{
		"tasks": [{"title": "HW2", "type": "Assignment", "week_number": 5}],
		"weekly_topics": [{"week": 3, "dates": "Mon, Oct 6"}]
	}`

	got, ok := extractStructured(doc, 2025)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestExtractStructuredSchemaNotRecognized(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "Math exam on December 15"},
		{name: "missing weekly_topics", text: `{"tasks": []}`},
		{name: "missing tasks", text: `{"weekly_topics": []}`},
		{name: "json scalar", text: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := extractStructured(tt.text, 2025)
			assert.False(t, ok)
		})
	}
}

func TestExtractYearRecognizedSchemaDoesNotFallThrough(t *testing.T) {
	// A recognized document with no resolvable dates yields zero events;
	// the cascade must not run over the raw JSON afterwards.
	doc := `{
		"tasks": [{"title": "Essay due November 20", "type": "Essay", "week_number": 9}],
		"weekly_topics": [{"week": 1, "dates": "TBD"}]
	}`

	got := ExtractYear(doc, 2025)
	assert.Empty(t, got)
}
