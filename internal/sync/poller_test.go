package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htran/syllabuscal/internal/source"
	"github.com/htran/syllabuscal/tests/testutil"
)

// fakeSource returns a fixed batch of text items.
type fakeSource struct {
	items []source.TextItem
	err   error
}

func (f *fakeSource) Type() source.SourceType { return source.SourceTypeEmail }

func (f *fakeSource) ValidateConnection(context.Context) (string, error) {
	return "fake", nil
}

func (f *fakeSource) FetchTexts(
	context.Context, source.FetchOptions,
) (*source.FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &source.FetchResult{Items: f.items}, nil
}

func TestPollerExtractsAndStoresFetchedItems(t *testing.T) {
	s := testutil.NewTestStore(t)

	fake := &fakeSource{items: []source.TextItem{
		{Key: "msg-1", Label: "CS101", Content: "Math exam on December 15"},
		{Key: "msg-2", Label: "HIST", Content: "nothing due here"},
	}}

	p := New(s)
	p.RegisterSource(fake, 300)
	p.fetchAndExtract(sourceEntry{src: fake, pollIntervalSec: 300}, fake.Type())

	msg := <-p.resultCh
	require.NoError(t, msg.Error)
	require.Len(t, msg.Deadlines, 1)
	assert.Equal(t, "Math exam", msg.Deadlines[0].Title)

	count, err := s.CountDeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPollerSkipsAlreadySeenItems(t *testing.T) {
	s := testutil.NewTestStore(t)

	fake := &fakeSource{items: []source.TextItem{
		{Key: "msg-1", Label: "CS101", Content: "Quiz on Nov 30"},
	}}

	p := New(s)
	p.RegisterSource(fake, 300)

	entry := sourceEntry{src: fake, pollIntervalSec: 300}
	p.fetchAndExtract(entry, fake.Type())
	p.fetchAndExtract(entry, fake.Type())

	count, err := s.CountDeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count, "second poll must not re-extract the same message")
}

func TestPollerReportsAuthErrors(t *testing.T) {
	s := testutil.NewTestStore(t)

	fake := &fakeSource{err: &source.AuthError{
		SourceType: source.SourceTypeEmail,
		Message:    "login rejected",
	}}

	p := New(s)
	p.RegisterSource(fake, 300)
	p.fetchAndExtract(sourceEntry{src: fake, pollIntervalSec: 300}, fake.Type())

	msg := <-p.resultCh
	require.Error(t, msg.Error)
	require.NotNil(t, msg.AuthError)
	assert.Equal(t, source.SourceTypeEmail, msg.AuthError.SourceType)
}
