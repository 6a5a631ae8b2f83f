package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/htran/syllabuscal/internal/model"
)

func TestAddedReply(t *testing.T) {
	reply := AddedReply([]model.Deadline{
		{Title: "Math exam", Date: "2025-12-15", Type: model.TypeExam},
		{Title: "HW1", Date: "2025-10-08", Type: model.TypeAssignment, Course: "CS101"},
	})

	assert.Contains(t, reply, "Added 2 deadlines")
	assert.Contains(t, reply, "Math exam (exam) on 2025-12-15")
	assert.Contains(t, reply, "HW1 (assignment) on 2025-10-08 [CS101]")
}

func TestAddedReplySingular(t *testing.T) {
	reply := AddedReply([]model.Deadline{
		{Title: "Quiz", Date: "2025-11-30", Type: model.TypeQuiz},
	})

	assert.Contains(t, reply, "Added 1 deadline to")
}

func TestAddedReplyEmptyFallsBackToHint(t *testing.T) {
	// The caller distinguishes "found" from "not found" by the copy.
	assert.Equal(t, NoMatchReply, AddedReply(nil))
}

func TestConversationContextTrimsButKeepsGreeting(t *testing.T) {
	c := NewConversationContext()
	c.AddMessage(model.RoleAssistant, Greeting, nil)

	for i := 0; i < 60; i++ {
		c.AddMessage(model.RoleUser, "Math exam on December 15", nil)
	}

	msgs := c.GetMessages()
	assert.Len(t, msgs, 50)
	assert.Equal(t, Greeting, msgs[0].Content)

	c.Reset()
	assert.Zero(t, c.Len())
}
