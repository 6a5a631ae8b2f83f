package source

import (
	"context"
	"errors"
	"fmt"
)

// AuthError indicates that authentication has failed or expired for a
// source. It is returned by source clients when a login is rejected.
type AuthError struct {
	SourceType SourceType
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.SourceType, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// SourceType identifies the kind of external text source.
type SourceType string

const (
	SourceTypeEmail SourceType = "email"
)

// TextItem is one unit of syllabus text retrieved from a source, ready to
// be handed to the extraction engine.
type TextItem struct {
	// Key uniquely identifies the item within its source (e.g. an IMAP
	// message ID), so callers can avoid re-processing it.
	Key string

	// Label is a short human-readable origin, shown in the transcript.
	Label string

	// Content is the raw text to extract deadlines from.
	Content string
}

// FetchOptions controls how much a fetch retrieves.
type FetchOptions struct {
	Limit int
}

// FetchResult holds a batch of text items returned from a source.
type FetchResult struct {
	Items []TextItem
}

// Source defines the contract every external text source implements.
// Sources only deliver text; extraction and storage stay with the caller.
type Source interface {
	// Type returns the source type identifier.
	Type() SourceType

	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable status message on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchTexts retrieves recent text items from the source.
	FetchTexts(ctx context.Context, opts FetchOptions) (*FetchResult, error)
}
