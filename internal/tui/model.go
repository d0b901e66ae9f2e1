package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
)

// Actions that allow only one request in flight. Sends are not limited.
const (
	actionLogin    = "login"
	actionContexts = "contexts"
	actionSelect   = "select"
	actionReset    = "reset"
	actionFinish   = "finish"
	actionExport   = "export"
)

const (
	focusUser = iota
	focusPassword
)

// Option configures a Model
type Option func(*Model)

// WithExportDir sets where ctrl+e writes transcripts (default: working directory)
func WithExportDir(dir string) Option {
	return func(m *Model) { m.exportDir = dir }
}

// WithExportFormat sets the transcript format written by ctrl+e (default: md)
func WithExportFormat(format string) Option {
	return func(m *Model) { m.exportFormat = format }
}

// Model is the interactive client. It owns no session state of its own:
// everything is read back from the controller, so the screen always matches
// what the guard allows.
type Model struct {
	ctrl *internal.Controller
	view internal.View

	width  int
	height int

	userInput     textinput.Model
	passwordInput textinput.Model
	loginFocus    int

	contexts []api.UserContext
	table    table.Model

	chatInput textinput.Model
	viewport  viewport.Model
	sending   int
	spinner   spinner.Model

	busy   map[string]bool
	status string
	err    error

	exportDir    string
	exportFormat string

	startCmd tea.Cmd
}

// New builds the model and opens the furthest view the stored session allows
func New(ctrl *internal.Controller, opts ...Option) Model {
	user := textinput.New()
	user.Placeholder = "user id"
	user.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	chat := textinput.New()
	chat.Placeholder = "Type a message"
	chat.CharLimit = 4000

	t := table.New(
		table.WithColumns(contextColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	m := Model{
		ctrl:          ctrl,
		userInput:     user,
		passwordInput: password,
		table:         t,
		chatInput:     chat,
		viewport:      viewport.New(80, 15),
		spinner:       sp,
		busy:          make(map[string]bool),
		exportDir:     ".",
		exportFormat:  "md",
		width:         80,
		height:        24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	var cmd tea.Cmd
	m, cmd = m.navigate(ctrl.CurrentView())
	m.startCmd = cmd
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.startCmd)
}

// CurrentView returns the screen currently shown
func (m Model) CurrentView() internal.View {
	return m.view
}

// Err returns the inline error currently shown
func (m Model) Err() error {
	return m.err
}

// navigate asks the guard for want and sets up whichever view it grants
func (m Model) navigate(want internal.View) (Model, tea.Cmd) {
	m.view = m.ctrl.Guard().Enter(want)
	m.userInput.Blur()
	m.passwordInput.Blur()
	m.chatInput.Blur()

	switch m.view {
	case internal.ViewLogin:
		m.passwordInput.SetValue("")
		m.loginFocus = focusUser
		m.userInput.Focus()
		return m, nil
	case internal.ViewSelectContext:
		m.contexts = nil
		m.table.SetRows(nil)
		m.busy[actionContexts] = true
		return m, m.fetchContextsCmd()
	case internal.ViewChat:
		m.chatInput.SetValue(m.ctrl.Conversation().Input())
		m.chatInput.Focus()
		m.refreshConversation()
		return m, nil
	}
	return m, nil
}

func contextColumns(width int) []table.Column {
	name := width - 8 - 8 - 6 - 10
	if name < 20 {
		name = 20
	}
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: name / 2},
		{Title: "Company", Width: 8},
		{Title: "Company name", Width: name - name/2},
		{Title: "Resources", Width: 10},
	}
}
