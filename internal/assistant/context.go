package assistant

import (
	"sync"
	"time"

	"github.com/htran/syllabuscal/internal/model"
)

// ConversationContext maintains the ordered chat transcript for the
// session, trimming the oldest entries when the limit is reached.
type ConversationContext struct {
	mu          sync.Mutex
	messages    []model.Message
	maxMessages int
}

// NewConversationContext creates a conversation context with a default
// maximum of 50 messages.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		messages:    make([]model.Message, 0, 50),
		maxMessages: 50,
	}
}

// AddMessage appends a message to the transcript. If the number of
// messages exceeds the limit, the oldest are trimmed while keeping the
// first message (the greeting).
func (c *ConversationContext) AddMessage(
	role model.Role,
	content string,
	deadlineIDs []string,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, model.Message{
		Role:        role,
		Content:     content,
		DeadlineIDs: deadlineIDs,
		CreatedAt:   time.Now(),
	})

	if len(c.messages) > c.maxMessages {
		trimmed := make([]model.Message, 0, c.maxMessages)
		trimmed = append(trimmed, c.messages[0])
		excess := len(c.messages) - c.maxMessages
		trimmed = append(trimmed, c.messages[1+excess:]...)
		c.messages = trimmed
	}
}

// GetMessages returns a copy of the current transcript.
func (c *ConversationContext) GetMessages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]model.Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// Reset clears the transcript.
func (c *ConversationContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = c.messages[:0]
}

// Len returns the number of messages in the transcript.
func (c *ConversationContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.messages)
}
