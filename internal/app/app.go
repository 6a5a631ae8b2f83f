// Package app wires the views, the store, and the inbox poller into the
// root Bubble Tea model.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/htran/syllabuscal/internal/assistant"
	"github.com/htran/syllabuscal/internal/credential"
	"github.com/htran/syllabuscal/internal/keys"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/source/email"
	"github.com/htran/syllabuscal/internal/store"
	appsync "github.com/htran/syllabuscal/internal/sync"
	"github.com/htran/syllabuscal/internal/ui"
	"github.com/htran/syllabuscal/internal/ui/calview"
	"github.com/htran/syllabuscal/internal/ui/chat"
	helpview "github.com/htran/syllabuscal/internal/ui/help"
	setupview "github.com/htran/syllabuscal/internal/ui/setup"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewChat ViewState = iota
	ViewCalendar
	ViewSetup
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the background inbox poller.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	config       *model.AppConfig
	configPath   string
	keys         *keys.KeyMap

	chatView  chat.Model
	calView   calview.Model
	setupView setupview.Model
	helpView  helpview.Model

	poller           *appsync.Poller
	ready            bool
	authErrorMessage string
}

// New creates a new root application model.
func New(s store.Store, cfg *model.AppConfig, configPath string) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewChat,
		store:       s,
		config:      cfg,
		configPath:  configPath,
		keys:        k,
		chatView:    chat.New(s, k, 80, 24),
		calView:     calview.New(s, k, 80, 24),
		setupView:   setupview.New(configPath, cfg, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		poller:      appsync.New(s),
	}
}

// Init loads the calendar snapshot and, when an email source is
// configured, starts the inbox poller.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.chatView.Init(),
		m.calView.Init(),
	}

	if m.config.Email.Enabled {
		if cmd := m.startEmailPolling(m.config.Email); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

// startEmailPolling registers the email source with the poller and starts
// it. The account password comes from the system keyring.
func (m *Model) startEmailPolling(cfg model.EmailConfig) tea.Cmd {
	password, err := credential.Get(credential.KeyEmailPassword)
	if err != nil || password == "" {
		m.authErrorMessage = "email: no stored password. Press 'c' to reconfigure."
		return nil
	}

	adapter := email.NewAdapter(
		cfg.Host, cfg.Port, cfg.Username, password, cfg.TLS,
	)
	m.poller.RegisterSource(adapter, cfg.PollIntervalSec)
	return m.poller.Start()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.chatView.SetSize(contentWidth, contentHeight)
		m.calView.SetSize(contentWidth, contentHeight)
		m.setupView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case chat.DeadlinesAddedMsg:
		// New deadlines came in from the chat; refresh the calendar.
		return m, m.calView.Reload()

	case chat.ThinkingDoneMsg, chat.ReplyMsg:
		// Always route to the chat view so an in-flight extraction
		// finishes even after the user tabs away.
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd

	case calview.DeadlinesLoadedMsg:
		// Calendar snapshots can arrive while another view is active.
		var cmd tea.Cmd
		m.calView, cmd = m.calView.Update(msg)
		return m, cmd

	case appsync.SyncResultMsg:
		if msg.AuthError != nil {
			m.authErrorMessage = msg.AuthError.Message
		} else if msg.Error == nil {
			m.authErrorMessage = ""
		}

		if len(msg.Deadlines) > 0 {
			m.chatView.AddNotice(assistant.EmailReply(msg.Deadlines), msg.Deadlines)
		}

		return m, tea.Batch(
			m.calView.Reload(),
			m.poller.WaitForNextResult(),
		)

	case setupview.EmailConfiguredMsg:
		// Restart polling with the fresh credentials.
		m.poller.Stop()
		m.poller = appsync.New(m.store)
		return m, m.startEmailPolling(msg.Config)

	case setupview.DoneMsg:
		m.currentView = m.previousView
		if m.currentView == ViewSetup {
			m.currentView = ViewChat
		}
		return m, nil

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			m.poller.Stop()
			return m, tea.Quit

		case "q":
			if m.currentView == ViewCalendar {
				m.poller.Stop()
				return m, tea.Quit
			}

		case "tab":
			switch m.currentView {
			case ViewChat:
				m.chatView.Blur()
				m.currentView = ViewCalendar
				return m, m.calView.Reload()
			case ViewCalendar:
				m.currentView = ViewChat
				return m, m.chatView.Focus()
			}

		case "?":
			// Do not intercept while the chat input or setup form has focus
			if m.currentView == ViewChat || m.currentView == ViewSetup {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "c":
			if m.currentView == ViewCalendar {
				m.previousView = m.currentView
				m.currentView = ViewSetup
				m.setupView = setupview.New(
					m.configPath, m.config, m.keys,
					m.layout.ContentWidth(), m.layout.ContentHeight(),
				)
				return m, m.setupView.Init()
			}

		case "r":
			if m.currentView == ViewCalendar {
				m.poller.RefreshAll()
				return m, m.calView.Reload()
			}

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewCalendar:
		m.calView, cmd = m.calView.Update(msg)
	case ViewSetup:
		m.setupView, cmd = m.setupView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Syllabus Calendar", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewChat:
		return m.chatView.View()
	case ViewCalendar:
		return m.calView.View()
	case ViewSetup:
		return m.setupView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerStatus returns a short string naming the active view and the
// inbox sync state.
func (m Model) headerStatus() string {
	viewName := "chat"
	switch m.currentView {
	case ViewCalendar:
		viewName = "calendar"
	case ViewSetup:
		viewName = "setup"
	case ViewHelp:
		viewName = "help"
	}

	statuses := m.poller.GetStatuses()
	if len(statuses) == 0 {
		return viewName
	}

	for _, s := range statuses {
		switch s.State {
		case appsync.SyncRunning:
			return fmt.Sprintf("%s | syncing", viewName)
		case appsync.SyncError:
			return fmt.Sprintf("%s | %s unreachable", viewName, s.SourceType)
		}
	}
	return fmt.Sprintf("%s | inbox idle", viewName)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.authErrorMessage != "" && m.currentView == ViewCalendar {
		return m.authErrorMessage
	}

	switch m.currentView {
	case ViewChat:
		return "enter send | tab calendar | ctrl+c quit"
	case ViewCalendar:
		return "h/l month | j/k move | enter day | x delete | c setup | r refresh | tab chat | q quit"
	case ViewSetup:
		return "enter next | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return ""
	}
}
