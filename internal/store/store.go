package store

import (
	"context"

	"github.com/htran/syllabuscal/internal/model"
)

// Store defines the session persistence interface for deadlines. The
// backing database lives in memory, so everything here is gone when the
// session ends.
type Store interface {
	// AppendDeadlines adds a batch of deadlines in order, assigning IDs.
	// No deduplication is performed against existing contents; separate
	// extraction calls may legally store colliding records.
	AppendDeadlines(ctx context.Context, deadlines []model.Deadline) ([]model.Deadline, error)

	// DeleteDeadline removes a single deadline by ID.
	DeleteDeadline(ctx context.Context, id string) error

	// GetDeadlinesForDate returns all deadlines on the given canonical
	// YYYY-MM-DD date, in insertion order.
	GetDeadlinesForDate(ctx context.Context, date string) ([]model.Deadline, error)

	// GetDeadlinesChronological returns all deadlines ordered by ascending
	// date, insertion order breaking ties.
	GetDeadlinesChronological(ctx context.Context) ([]model.Deadline, error)

	// CountDeadlines returns the number of stored deadlines.
	CountDeadlines(ctx context.Context) (int, error)
}
