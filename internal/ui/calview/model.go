// Package calview implements the month-grid calendar view with its
// chronological deadline list.
package calview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/syllabuscal/internal/calendar"
	"github.com/htran/syllabuscal/internal/keys"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/store"
	"github.com/htran/syllabuscal/internal/theme"
)

// DeadlinesLoadedMsg carries a fresh snapshot of stored deadlines.
type DeadlinesLoadedMsg struct {
	all       []model.Deadline
	dayEvents []model.Deadline
	err       error
}

// deadlineDeletedMsg fires after a delete completes.
type deadlineDeletedMsg struct {
	err error
}

// Model is the calendar view Bubble Tea model. It renders the month grid
// for the cursor month alongside the chronological deadline list, with an
// optional per-day panel when a day is selected.
type Model struct {
	store       store.Store
	cursor      calendar.Cursor
	selectedDay int
	deadlines   []model.Deadline
	dayEvents   []model.Deadline
	listIndex   int
	loadErr     error
	keys        *keys.KeyMap
	width       int
	height      int
}

// New creates a calendar view positioned at the current month.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		cursor: calendar.Today(),
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads the initial deadline snapshot.
func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload returns a command that refreshes the deadline snapshot from the
// store, including the selected day's events when a day is selected.
func (m Model) Reload() tea.Cmd {
	s := m.store
	cursor := m.cursor
	day := m.selectedDay
	return func() tea.Msg {
		ctx := context.Background()

		all, err := s.GetDeadlinesChronological(ctx)
		if err != nil {
			return DeadlinesLoadedMsg{err: err}
		}

		var dayEvents []model.Deadline
		if day > 0 {
			dayEvents, err = calendar.EventsForDay(ctx, s, cursor, day)
			if err != nil {
				return DeadlinesLoadedMsg{err: err}
			}
		}

		return DeadlinesLoadedMsg{all: all, dayEvents: dayEvents}
	}
}

// Update handles messages for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DeadlinesLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.loadErr = nil
		m.deadlines = msg.all
		m.dayEvents = msg.dayEvents
		if m.listIndex >= len(m.deadlines) {
			m.listIndex = len(m.deadlines) - 1
		}
		if m.listIndex < 0 {
			m.listIndex = 0
		}
		return m, nil

	case deadlineDeletedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		return m, m.Reload()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for the calendar view.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevMonth):
		m.cursor = m.cursor.Previous()
		m.selectedDay = 0
		return m, m.Reload()

	case key.Matches(msg, m.keys.NextMonth):
		m.cursor = m.cursor.Next()
		m.selectedDay = 0
		return m, m.Reload()

	case key.Matches(msg, m.keys.Down):
		if m.listIndex < len(m.deadlines)-1 {
			m.listIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.listIndex > 0 {
			m.listIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectCurrentDeadlineDay()

	case key.Matches(msg, m.keys.Back):
		m.selectedDay = 0
		m.dayEvents = nil
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected()
	}

	return m, nil
}

// selectCurrentDeadlineDay jumps the grid to the day of the deadline
// under the list cursor, moving the cursor month if needed.
func (m Model) selectCurrentDeadlineDay() (Model, tea.Cmd) {
	if m.listIndex >= len(m.deadlines) {
		return m, nil
	}

	d := m.deadlines[m.listIndex]
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return m, nil
	}

	m.cursor = calendar.Cursor{Year: t.Year(), Month: t.Month()}
	m.selectedDay = t.Day()
	return m, m.Reload()
}

// deleteSelected removes the deadline under the list cursor.
func (m Model) deleteSelected() (Model, tea.Cmd) {
	if m.listIndex >= len(m.deadlines) {
		return m, nil
	}

	s := m.store
	id := m.deadlines[m.listIndex].ID
	return m, func() tea.Msg {
		err := s.DeleteDeadline(context.Background(), id)
		return deadlineDeletedMsg{err: err}
	}
}

// markedDays returns the set of days in the cursor month that have at
// least one deadline.
func (m Model) markedDays() map[int]bool {
	prefix := fmt.Sprintf("%04d-%02d-", m.cursor.Year, int(m.cursor.Month))
	marked := make(map[int]bool)
	for _, d := range m.deadlines {
		if !strings.HasPrefix(d.Date, prefix) {
			continue
		}
		var day int
		if _, err := fmt.Sscanf(d.Date[len(prefix):], "%d", &day); err == nil {
			marked[day] = true
		}
	}
	return marked
}

// View renders the calendar view.
func (m Model) View() string {
	grid := m.renderGrid()

	var right string
	if m.selectedDay > 0 {
		right = m.renderDayPanel()
	} else {
		right = m.renderList()
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", right)

	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.ColorRed)
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			content,
			errStyle.Render(fmt.Sprintf("Error: %v", m.loadErr)),
		)
	}

	return theme.PanelStyle.Render(content)
}

// renderGrid renders the month grid with week headers.
func (m Model) renderGrid() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(m.cursor.Title()))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	for _, name := range calendar.DayNames {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s", name)))
	}
	b.WriteString("\n")

	now := time.Now()
	today := 0
	if m.cursor.Contains(now) {
		today = now.Day()
	}
	marked := m.markedDays()

	cells := calendar.DaysInMonth(m.cursor.Year, m.cursor.Month)
	for i, day := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}

		if day == 0 {
			b.WriteString("    ")
			continue
		}

		cell := fmt.Sprintf("%3d ", day)
		switch {
		case day == m.selectedDay:
			cell = theme.SelectedDayStyle.Render(cell)
		case day == today:
			cell = theme.TodayStyle.Render(cell)
		case marked[day]:
			cell = theme.MarkedDayStyle.Render(cell)
		}
		b.WriteString(cell)
	}

	return b.String()
}

// renderList renders the chronological deadline list with the selection
// highlight.
func (m Model) renderList() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	if len(m.deadlines) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No deadlines yet. Add some from the chat view.")
		return lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render("Upcoming deadlines"),
			"",
			empty,
		)
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Upcoming deadlines"), "")

	for i, d := range m.deadlines {
		line := fmt.Sprintf("%s  %s %s",
			d.Date,
			theme.TypeStyle(d.Type).Render(d.Type),
			d.Title,
		)
		if d.Course != "" {
			line += lipgloss.NewStyle().
				Foreground(theme.ColorGray).
				Render(" [" + d.Course + "]")
		}

		if i == m.listIndex {
			lines = append(lines, theme.SelectedItemStyle.Render(line))
		} else {
			lines = append(lines, theme.ListItemStyle.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderDayPanel renders the events for the selected day.
func (m Model) renderDayPanel() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := titleStyle.Render(
		fmt.Sprintf("Deadlines on %s", m.cursor.DateKey(m.selectedDay)),
	)

	if len(m.dayEvents) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Nothing due this day.")
		return lipgloss.JoinVertical(lipgloss.Left, title, "", empty)
	}

	var lines []string
	lines = append(lines, title, "")
	for _, d := range m.dayEvents {
		line := fmt.Sprintf("%s %s",
			theme.TypeStyle(d.Type).Render(d.Type),
			d.Title,
		)
		if d.Course != "" {
			line += lipgloss.NewStyle().
				Foreground(theme.ColorGray).
				Render(" [" + d.Course + "]")
		}
		lines = append(lines, theme.ListItemStyle.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the calendar view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
