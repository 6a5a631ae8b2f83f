// Package chat implements the conversational view where the user types
// deadline descriptions, pastes syllabus text, or uploads files.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/syllabuscal/internal/assistant"
	"github.com/htran/syllabuscal/internal/extract"
	"github.com/htran/syllabuscal/internal/keys"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/store"
	"github.com/htran/syllabuscal/internal/theme"
	"github.com/htran/syllabuscal/internal/upload"
)

// thinkingDelay is how long the assistant appears to think before
// replying. Purely presentational; extraction itself is synchronous.
const thinkingDelay = 800 * time.Millisecond

// DeadlinesAddedMsg signals the parent that new deadlines were stored and
// the calendar view should reload.
type DeadlinesAddedMsg struct {
	Deadlines []model.Deadline
}

// ThinkingDoneMsg fires when the thinking delay elapses.
type ThinkingDoneMsg struct {
	input string
}

// ReplyMsg carries the finished assistant reply and any stored deadlines.
type ReplyMsg struct {
	reply     string
	deadlines []model.Deadline
}

// uploadPrefix marks a chat input as a file upload command.
const uploadPrefix = "/upload "

// Model is the chat view Bubble Tea model.
type Model struct {
	store    store.Store
	convo    *assistant.ConversationContext
	input    textarea.Model
	viewport viewport.Model
	thinking bool
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new chat model seeded with the assistant greeting.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe a deadline, paste a syllabus, or /upload <path>..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.CharLimit = 10000
	ta.Focus()

	vpHeight := height - 8 // space for input area + borders
	if vpHeight < 4 {
		vpHeight = 4
	}

	vp := viewport.New(width-4, vpHeight)
	vp.Style = lipgloss.NewStyle()

	convo := assistant.NewConversationContext()
	convo.AddMessage(model.RoleAssistant, assistant.Greeting, nil)

	m := Model{
		store:    s,
		convo:    convo,
		input:    ta,
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
	m.refreshViewport()
	return m
}

// Init returns the initial command for the chat view.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThinkingDoneMsg:
		return m, m.process(msg.input)

	case ReplyMsg:
		m.thinking = false
		var ids []string
		for _, d := range msg.deadlines {
			ids = append(ids, d.ID)
		}
		m.convo.AddMessage(model.RoleAssistant, msg.reply, ids)
		m.refreshViewport()

		if len(msg.deadlines) > 0 {
			deadlines := msg.deadlines
			return m, func() tea.Msg {
				return DeadlinesAddedMsg{Deadlines: deadlines}
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Delegate to textarea and viewport
	var cmds []tea.Cmd

	var taCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	if taCmd != nil {
		cmds = append(cmds, taCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input for the chat view.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.thinking {
			return m, nil
		}

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}

		m.input.Reset()
		m.convo.AddMessage(model.RoleUser, text, nil)
		m.thinking = true
		m.refreshViewport()

		return m, tea.Tick(thinkingDelay, func(time.Time) tea.Msg {
			return ThinkingDoneMsg{input: text}
		})
	}

	// Let textarea handle other keys
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// process returns a command that extracts deadlines from the input (or
// from an uploaded file), stores them, and produces the assistant reply.
func (m Model) process(input string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		text := input
		fromFile := false

		if strings.HasPrefix(input, uploadPrefix) {
			path := strings.TrimSpace(strings.TrimPrefix(input, uploadPrefix))
			content, err := upload.ReadTextFile(path)
			if err != nil {
				if errors.Is(err, upload.ErrBinaryContent) {
					return ReplyMsg{reply: assistant.BinaryFileReply}
				}
				return ReplyMsg{reply: fmt.Sprintf("Could not read %s: %v", path, err)}
			}
			text = content
			fromFile = true
		}

		deadlines := extract.Extract(text)
		if len(deadlines) == 0 {
			if fromFile {
				return ReplyMsg{reply: assistant.NoMatchFileReply}
			}
			return ReplyMsg{reply: assistant.NoMatchReply}
		}

		stored, err := s.AppendDeadlines(context.Background(), deadlines)
		if err != nil {
			return ReplyMsg{reply: fmt.Sprintf("Could not save deadlines: %v", err)}
		}

		return ReplyMsg{
			reply:     assistant.AddedReply(stored),
			deadlines: stored,
		}
	}
}

// AddNotice appends an assistant-authored notice to the transcript, used
// by the parent for inbox sync results.
func (m *Model) AddNotice(content string, deadlines []model.Deadline) {
	var ids []string
	for _, d := range deadlines {
		ids = append(ids, d.ID)
	}
	m.convo.AddMessage(model.RoleAssistant, content, ids)
	m.refreshViewport()
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the transcript display string.
func (m Model) renderConversation() string {
	var sections []string

	roleStyle := lipgloss.NewStyle().Bold(true)
	userStyle := roleStyle.Foreground(theme.ColorBlue)
	assistantStyle := roleStyle.Foreground(theme.ColorGreen)
	contentStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	for _, msg := range m.convo.GetMessages() {
		var label string
		switch msg.Role {
		case model.RoleUser:
			label = userStyle.Render("You:")
		case model.RoleAssistant:
			label = assistantStyle.Render("Assistant:")
		default:
			label = roleStyle.Render(string(msg.Role) + ":")
		}

		sections = append(sections, label)
		sections = append(sections, contentStyle.Render(msg.Content))
		sections = append(sections, "")
	}

	if m.thinking {
		thinkingStyle := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true)
		sections = append(sections, thinkingStyle.Render("..."))
	}

	return strings.Join(sections, "\n")
}

// View renders the chat view.
func (m Model) View() string {
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	sepWidth := m.width - 6
	if sepWidth > 80 {
		sepWidth = 80
	}
	if sepWidth < 1 {
		sepWidth = 1
	}
	separator := sepStyle.Render(strings.Repeat("─", sepWidth))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		separator,
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the chat view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)

	vpHeight := height - 8
	if vpHeight < 4 {
		vpHeight = 4
	}
	m.viewport.Width = width - 4
	m.viewport.Height = vpHeight
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus from the text input.
func (m *Model) Blur() {
	m.input.Blur()
}
