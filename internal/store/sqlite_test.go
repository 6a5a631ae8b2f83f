package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/tests/testutil"
)

func TestAppendDeadlinesAssignsIDsAndPreservesOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	stored, err := s.AppendDeadlines(ctx, []model.Deadline{
		{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
		{Title: "History essay", Date: "2025-11-20", Type: model.TypeAssignment},
		{Title: "Lab report", Date: "2025-12-15", Type: model.TypeAssignment},
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for _, d := range stored {
		assert.NotEmpty(t, d.ID)
	}

	// Same-date lookups come back in insertion order.
	got, err := s.GetDeadlinesForDate(ctx, "2025-12-15")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Math exam", got[0].Title)
	assert.Equal(t, "Lab report", got[1].Title)
}

func TestAppendDeadlinesKeepsCrossCallDuplicates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	d := model.Deadline{Title: "Quiz", Date: "2025-11-30", Type: model.TypeQuiz}

	_, err := s.AppendDeadlines(ctx, []model.Deadline{d})
	require.NoError(t, err)
	_, err = s.AppendDeadlines(ctx, []model.Deadline{d})
	require.NoError(t, err)

	count, err := s.CountDeadlines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "duplicates across calls are stored, not merged")
}

func TestGetDeadlinesForDateEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.GetDeadlinesForDate(context.Background(), "2025-01-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetDeadlinesChronological(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.AppendDeadlines(ctx, []model.Deadline{
		{Title: "Final exam", Date: "2025-12-15", Type: model.TypeExam},
		{Title: "Essay", Date: "2025-11-20", Type: model.TypeAssignment},
		{Title: "Quiz", Date: "2025-11-20", Type: model.TypeQuiz},
		{Title: "Project", Date: "2025-02-01", Type: model.TypeProject},
	})
	require.NoError(t, err)

	got, err := s.GetDeadlinesChronological(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Project", got[0].Title)
	assert.Equal(t, "Essay", got[1].Title)
	assert.Equal(t, "Quiz", got[2].Title, "insertion order breaks date ties")
	assert.Equal(t, "Final exam", got[3].Title)
}

func TestDeleteDeadline(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	stored, err := s.AppendDeadlines(ctx, []model.Deadline{
		{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
		{Title: "Essay", Date: "2025-11-20", Type: model.TypeAssignment},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteDeadline(ctx, stored[0].ID))

	got, err := s.GetDeadlinesChronological(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Essay", got[0].Title)

	// Deleting an unknown ID is a no-op, not an error.
	assert.NoError(t, s.DeleteDeadline(ctx, "missing"))
}
