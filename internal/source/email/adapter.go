package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/htran/syllabuscal/internal/source"
)

// Adapter implements source.Source over an IMAP inbox. Each recent message
// becomes one text item (subject plus plain-text body) for the extraction
// engine to scan.
type Adapter struct {
	imapClient *IMAPClient
	username   string
}

// NewAdapter creates a new email source adapter.
func NewAdapter(
	host, port, username, password string, useTLS bool,
) *Adapter {
	return &Adapter{
		imapClient: NewIMAPClient(host, port, username, password, useTLS),
		username:   username,
	}
}

// Type returns the source type identifier for email.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeEmail
}

// ValidateConnection verifies IMAP credentials by connecting,
// authenticating, and selecting INBOX. Returns the username on success.
func (a *Adapter) ValidateConnection(
	ctx context.Context,
) (string, error) {
	client, err := a.imapClient.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("validating email connection: %w", err)
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return "", fmt.Errorf("selecting INBOX: %w", err)
	}

	return a.username, nil
}

// FetchTexts retrieves recent inbox messages and maps them to text items.
func (a *Adapter) FetchTexts(
	ctx context.Context,
	opts source.FetchOptions,
) (*source.FetchResult, error) {
	limit := opts.Limit
	if limit < 1 {
		limit = 50
	}

	messages, err := a.imapClient.FetchRecentMessages(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching email items: %w", err)
	}

	items := make([]source.TextItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, messageToItem(msg))
	}

	return &source.FetchResult{Items: items}, nil
}

// messageToItem converts a parsed message into a text item. Subject and
// body are joined so a deadline mentioned only in the subject line is
// still seen by the engine.
func messageToItem(msg ParsedMessage) source.TextItem {
	key := msg.Envelope.MessageID
	if key == "" {
		key = fmt.Sprintf("uid-%d", msg.Envelope.UID)
	}

	label := msg.Envelope.Subject
	if label == "" {
		label = "(no subject)"
	}
	if msg.Envelope.From != "" {
		label = fmt.Sprintf("%s (from %s)", label, msg.Envelope.From)
	}

	var content strings.Builder
	content.WriteString(msg.Envelope.Subject)
	if msg.TextBody != "" {
		content.WriteString("\n")
		content.WriteString(msg.TextBody)
	}

	return source.TextItem{
		Key:     key,
		Label:   label,
		Content: content.String(),
	}
}
