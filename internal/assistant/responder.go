// Package assistant composes the conversational replies shown in the chat
// panel. Replies are deterministic copy over extraction results; there is
// no language model behind them.
package assistant

import (
	"fmt"
	"strings"

	"github.com/htran/syllabuscal/internal/model"
)

// Greeting is the opening assistant message of every session.
const Greeting = "Hi! I can help you manage your academic calendar.\n\n" +
	"  - Tell me about assignments and exams\n" +
	"  - Paste syllabus text or structured syllabus data\n" +
	"  - Upload a plain-text file with /upload <path>\n" +
	"  - Connect your email inbox from the setup view\n\n" +
	"What would you like to do?"

// NoMatchReply is shown when an extraction call finds zero deadlines, so
// the user learns how to phrase one.
const NoMatchReply = "I can help you add deadlines! Try telling me something like:\n\n" +
	"  - \"Math exam on December 15\"\n" +
	"  - \"History essay due November 20\"\n" +
	"  - \"Quiz on Nov 30\"\n\n" +
	"Just include the assignment name and date!"

// NoMatchFileReply is the zero-results variant for uploaded files.
const NoMatchFileReply = "No deadlines found in that file. " +
	"Try describing them to me instead!"

// BinaryFileReply is shown when an upload is a PDF, an image, or other
// binary content the session cannot read.
const BinaryFileReply = "That file format requires backend processing. " +
	"For now, try copying and pasting the syllabus text or describing the " +
	"deadlines to me!"

// AddedReply summarizes a successful extraction call, listing each new
// deadline with its date.
func AddedReply(deadlines []model.Deadline) string {
	if len(deadlines) == 0 {
		return NoMatchReply
	}

	plural := ""
	if len(deadlines) > 1 {
		plural = "s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Added %d deadline%s to your calendar!\n", len(deadlines), plural)
	b.WriteString(deadlineList(deadlines))
	return b.String()
}

// EmailReply summarizes deadlines found while polling the inbox.
func EmailReply(deadlines []model.Deadline) string {
	if len(deadlines) == 0 {
		return ""
	}
	plural := ""
	if len(deadlines) > 1 {
		plural = "s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d deadline%s in your email inbox and added them to your calendar.\n",
		len(deadlines), plural)
	b.WriteString(deadlineList(deadlines))
	return b.String()
}

// deadlineList renders deadlines as bullet lines.
func deadlineList(deadlines []model.Deadline) string {
	var b strings.Builder
	for _, d := range deadlines {
		fmt.Fprintf(&b, "\n  - %s (%s) on %s", d.Title, d.Type, d.Date)
		if d.Course != "" {
			fmt.Fprintf(&b, " [%s]", d.Course)
		}
	}
	return b.String()
}
