package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/syllabuscal/internal/calendar"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/tests/testutil"
)

func TestDaysInMonth(t *testing.T) {
	// October 2025 starts on a Wednesday: three leading blanks, 31 days.
	days := calendar.DaysInMonth(2025, time.October)
	require.Len(t, days, 34)
	assert.Equal(t, []int{0, 0, 0, 1}, days[:4])
	assert.Equal(t, 31, days[len(days)-1])

	// February 2024 is a leap month starting on a Thursday.
	days = calendar.DaysInMonth(2024, time.February)
	require.Len(t, days, 33)
	assert.Equal(t, []int{0, 0, 0, 0, 1}, days[:5])
	assert.Equal(t, 29, days[len(days)-1])

	// June 2025 starts on a Sunday: no leading blanks.
	days = calendar.DaysInMonth(2025, time.June)
	require.Len(t, days, 30)
	assert.Equal(t, 1, days[0])
}

func TestCursorNavigation(t *testing.T) {
	c := calendar.Cursor{Year: 2025, Month: time.January}

	assert.Equal(t, calendar.Cursor{Year: 2024, Month: time.December}, c.Previous())
	assert.Equal(t, calendar.Cursor{Year: 2025, Month: time.February}, c.Next())

	dec := calendar.Cursor{Year: 2025, Month: time.December}
	assert.Equal(t, calendar.Cursor{Year: 2026, Month: time.January}, dec.Next())

	assert.Equal(t, "January 2025", c.Title())
	assert.Equal(t, "2025-01-05", c.DateKey(5))
}

func TestEventsForDay(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.AppendDeadlines(ctx, []model.Deadline{
		{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
		{Title: "Essay", Date: "2025-11-20", Type: model.TypeAssignment},
	})
	require.NoError(t, err)

	c := calendar.Cursor{Year: 2025, Month: time.December}

	got, err := calendar.EventsForDay(ctx, s, c, 15)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Math exam", got[0].Title)

	got, err = calendar.EventsForDay(ctx, s, c, 16)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Blank grid cells have no events.
	got, err = calendar.EventsForDay(ctx, s, c, 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}
