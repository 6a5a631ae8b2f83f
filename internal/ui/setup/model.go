// Package setup implements the email setup form.
package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/htran/syllabuscal/internal/credential"
	"github.com/htran/syllabuscal/internal/keys"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/source/email"
	"github.com/htran/syllabuscal/internal/theme"
)

// Mode represents the current state of the setup view.
type Mode int

const (
	ModeForm       Mode = iota // Email connection form
	ModeValidating             // Testing connection
	ModeResult                 // Show validation result
)

// DoneMsg signals the setup view should close and return to the main app.
type DoneMsg struct{}

// EmailConfiguredMsg signals that the email source was validated and
// saved, so the app can start polling it.
type EmailConfiguredMsg struct {
	Config model.EmailConfig
}

// validateResultMsg carries the result of a connection validation attempt.
type validateResultMsg struct {
	account string
	err     error
}

// Model is the Bubble Tea model for the email setup form.
type Model struct {
	configPath string
	config     *model.AppConfig

	form *huh.Form

	// Form field values (huh binds to these)
	formHost     string
	formPort     string
	formUsername string
	formPassword string
	formTLS      bool

	mode      Mode
	account   string
	validErr  error
	spinner   spinner.Model
	statusMsg string

	keys          *keys.KeyMap
	width, height int
}

// New creates a new setup view model pre-filled from the saved config.
func New(configPath string, cfg *model.AppConfig, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		configPath:   configPath,
		config:       cfg,
		mode:         ModeForm,
		formHost:     cfg.Email.Host,
		formPort:     cfg.Email.Port,
		formUsername: cfg.Email.Username,
		formTLS:      cfg.Email.TLS,
		keys:         k,
		spinner:      sp,
		width:        width,
		height:       height,
	}
	if m.formPort == "" {
		m.formPort = "993"
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("IMAP Host").
				Description("IMAP server hostname").
				Placeholder("imap.university.edu").
				Value(&m.formHost).
				Validate(validateRequired("IMAP Host")),
			huh.NewInput().
				Title("IMAP Port").
				Description("IMAP server port (e.g., 993)").
				Placeholder("993").
				Value(&m.formPort).
				Validate(validatePort),
			huh.NewInput().
				Title("Username").
				Description("Email account username").
				Placeholder("student@university.edu").
				Value(&m.formUsername).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				Description("Email account password or app password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(validateRequired("Password")),
			huh.NewConfirm().
				Title("Use TLS").
				Description("Implicit TLS; choose No for STARTTLS").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formTLS),
		),
	).WithWidth(m.formWidth())
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case validateResultMsg:
		m.mode = ModeResult
		m.account = msg.account
		m.validErr = msg.err
		if msg.err == nil {
			return m, m.saveConfig()
		}
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateForm(msg)
}

// handleKeyMsg processes key messages based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeForm:
		return m.updateForm(msg)

	case ModeValidating:
		if msg.String() == "esc" {
			m.mode = ModeForm
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, nil

	case ModeResult:
		switch msg.String() {
		case "enter", "esc":
			if m.validErr != nil {
				m.mode = ModeForm
				m.validErr = nil
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			cfg := m.config.Email
			return m, tea.Batch(
				func() tea.Msg { return EmailConfiguredMsg{Config: cfg} },
				func() tea.Msg { return DoneMsg{} },
			)
		}
		return m, nil
	}
	return m, nil
}

// updateForm advances the huh form and reacts to completion.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = ModeValidating
		return m, tea.Batch(
			m.spinner.Tick,
			m.validateConnection(),
		)
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return DoneMsg{} }
	}

	return m, cmd
}

// validateConnection tests the IMAP connection with the entered values.
func (m Model) validateConnection() tea.Cmd {
	adapter := email.NewAdapter(
		m.formHost, m.formPort, m.formUsername, m.formPassword, m.formTLS,
	)
	return func() tea.Msg {
		account, err := adapter.ValidateConnection(context.Background())
		return validateResultMsg{account: account, err: err}
	}
}

// saveConfig persists the validated settings and stores the password in
// the system keyring.
func (m *Model) saveConfig() tea.Cmd {
	m.config.Email.Enabled = true
	m.config.Email.Host = m.formHost
	m.config.Email.Port = m.formPort
	m.config.Email.Username = m.formUsername
	m.config.Email.TLS = m.formTLS
	if m.config.Email.PollIntervalSec <= 0 {
		m.config.Email.PollIntervalSec = 300
	}

	path := m.configPath
	cfg := m.config
	password := m.formPassword
	return func() tea.Msg {
		if err := credential.Set(credential.KeyEmailPassword, password); err != nil {
			return validateResultMsg{err: fmt.Errorf("saving credential: %w", err)}
		}
		if err := model.SaveConfig(path, cfg); err != nil {
			return validateResultMsg{err: err}
		}
		return nil
	}
}

// View renders the setup view based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeForm:
		return m.viewForm()
	case ModeValidating:
		return m.viewValidating()
	case ModeResult:
		return m.viewResult()
	default:
		return ""
	}
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Email Setup"),
		m.form.View(),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(content)
}

func (m Model) viewValidating() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width)

	content := fmt.Sprintf(
		"%s Testing connection...\n\nPress esc to cancel.",
		m.spinner.View(),
	)

	return style.Render(content)
}

func (m Model) viewResult() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width)

	var content string
	if m.validErr != nil {
		errStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorRed)
		content = errStyle.Render("Connection failed") + "\n\n" +
			m.validErr.Error() + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back to form")
	} else {
		okStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen)
		content = okStyle.Render("Connection successful") + "\n\n" +
			fmt.Sprintf("Authenticated as: %s", m.account) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc to start syncing")
	}

	return style.Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// --- Validators ---

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePort(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("port is required")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("port must be a number")
		}
	}
	return nil
}
