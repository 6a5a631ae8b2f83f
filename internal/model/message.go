package model

import "time"

// Role identifies the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the session's chat transcript.
type Message struct {
	Role    Role
	Content string

	// DeadlineIDs references deadlines created by the extraction call that
	// produced this message, if any.
	DeadlineIDs []string

	CreatedAt time.Time
}
