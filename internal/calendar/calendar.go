// Package calendar answers month-grid and per-day queries over the
// deadline store and tracks which month the user is looking at.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/store"
)

// DayNames are the week headers for a Sunday-start month grid.
var DayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DaysInMonth returns the grid cells for the given month as day numbers,
// preceded by zero placeholders for the blank cells before the month's
// first weekday (weeks start on Sunday).
func DaysInMonth(year int, month time.Month) []int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]int, 0, int(first.Weekday())+lastDay)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, 0)
	}
	for d := 1; d <= lastDay; d++ {
		days = append(days, d)
	}
	return days
}

// Cursor is the (year, month) pair currently displayed. It is independent
// of the stored deadlines and is passed around explicitly rather than held
// as hidden state.
type Cursor struct {
	Year  int
	Month time.Month
}

// Today returns a cursor at the real-world current month.
func Today() Cursor {
	now := time.Now()
	return Cursor{Year: now.Year(), Month: now.Month()}
}

// Previous returns the cursor one month back.
func (c Cursor) Previous() Cursor {
	if c.Month == time.January {
		return Cursor{Year: c.Year - 1, Month: time.December}
	}
	return Cursor{Year: c.Year, Month: c.Month - 1}
}

// Next returns the cursor one month forward.
func (c Cursor) Next() Cursor {
	if c.Month == time.December {
		return Cursor{Year: c.Year + 1, Month: time.January}
	}
	return Cursor{Year: c.Year, Month: c.Month + 1}
}

// Title renders the cursor as "Month Year" for display.
func (c Cursor) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

// DateKey returns the canonical date string for a day of the cursor's
// month, matching the extractor output byte for byte.
func (c Cursor) DateKey(day int) string {
	return model.DateKey(c.Year, c.Month, day)
}

// Contains reports whether t falls in the cursor's month.
func (c Cursor) Contains(t time.Time) bool {
	return t.Year() == c.Year && t.Month() == c.Month
}

// EventsForDay returns the stored deadlines for day of the cursor's month.
// A zero day (a blank grid cell) yields no events.
func EventsForDay(
	ctx context.Context,
	s store.Store,
	c Cursor,
	day int,
) ([]model.Deadline, error) {
	if day <= 0 {
		return nil, nil
	}
	return s.GetDeadlinesForDate(ctx, c.DateKey(day))
}
