package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/iksnae/chat-session/internal/export"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case contextsMsg:
		return m.handleContexts(msg)
	case selectDoneMsg:
		return m.handleSelectDone(msg)
	case sendDoneMsg:
		return m.handleSendDone(msg)
	case resetDoneMsg:
		return m.handleResetDone(msg)
	case finishDoneMsg:
		return m.handleFinishDone(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	m.table.SetColumns(contextColumns(msg.Width - 4))
	m.table.SetWidth(msg.Width - 2)
	if h := msg.Height - 8; h > 3 {
		m.table.SetHeight(h)
	}

	m.viewport.Width = msg.Width - 2
	if h := msg.Height - 8; h > 3 {
		m.viewport.Height = h
	}
	m.chatInput.Width = msg.Width - 4
	m.refreshConversation()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case internal.ViewLogin:
		return m.handleLoginKey(msg)
	case internal.ViewSelectContext:
		return m.handleSelectKey(msg)
	case internal.ViewChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m = m.toggleLoginFocus()
		return m, nil
	case "enter":
		if m.loginFocus == focusUser {
			m = m.toggleLoginFocus()
			return m, nil
		}
		if m.busy[actionLogin] {
			return m, nil
		}
		m.err = nil
		m.busy[actionLogin] = true
		creds := api.Credentials{
			UserID:   strings.TrimSpace(m.userInput.Value()),
			Password: m.passwordInput.Value(),
		}
		return m, m.loginCmd(creds)
	}
	return m.updateFocused(msg)
}

func (m Model) toggleLoginFocus() Model {
	if m.loginFocus == focusUser {
		m.loginFocus = focusPassword
		m.userInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.loginFocus = focusUser
		m.passwordInput.Blur()
		m.userInput.Focus()
	}
	return m
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "r":
		if m.busy[actionContexts] {
			return m, nil
		}
		m.err = nil
		m.busy[actionContexts] = true
		return m, m.fetchContextsCmd()
	case "l":
		m.ctrl.Logout()
		return m.navigate(internal.ViewLogin)
	case "enter":
		row := m.table.SelectedRow()
		if row == nil || m.busy[actionSelect] {
			return m, nil
		}
		m.err = nil
		m.busy[actionSelect] = true
		return m, m.selectCmd(row[0])
	}
	return m.updateFocused(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Conversation().SetInput(m.chatInput.Value())
		return m.navigate(internal.ViewSelectContext)
	case "enter":
		text := m.chatInput.Value()
		m.err = nil
		m.sending++
		return m, m.sendCmd(text)
	case "ctrl+r":
		if m.busy[actionReset] {
			return m, nil
		}
		m.err = nil
		m.busy[actionReset] = true
		return m, m.resetCmd()
	case "ctrl+f":
		if m.busy[actionFinish] {
			return m, nil
		}
		m.err = nil
		m.busy[actionFinish] = true
		return m, m.finishCmd()
	case "ctrl+e":
		if m.busy[actionExport] {
			return m, nil
		}
		m.busy[actionExport] = true
		sess, _ := m.ctrl.Session()
		t := export.NewTranscript(sess.ContextID, m.ctrl.Conversation().Entries())
		return m, exportCmd(m.exportDir, m.exportFormat, t)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	model, cmd := m.updateFocused(msg)
	m = model.(Model)
	m.ctrl.Conversation().SetInput(m.chatInput.Value())
	return m, cmd
}

// updateFocused forwards msg to the component that has focus
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case internal.ViewLogin:
		if m.loginFocus == focusUser {
			m.userInput, cmd = m.userInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	case internal.ViewSelectContext:
		m.table, cmd = m.table.Update(msg)
	case internal.ViewChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.busy[actionLogin] = false
	if msg.err != nil {
		m.err = msg.err
		m.passwordInput.SetValue("")
		return m, nil
	}
	return m.navigate(msg.view)
}

// failed shows err inline. When the session or context it needed is gone,
// the view is re-entered so the guard can send the user back.
func (m Model) failed(err error) (tea.Model, tea.Cmd) {
	m.err = err
	if errors.Is(err, internal.ErrNoSession) || errors.Is(err, internal.ErrNoContext) {
		return m.navigate(m.ctrl.CurrentView())
	}
	return m, nil
}

func (m Model) handleContexts(msg contextsMsg) (tea.Model, tea.Cmd) {
	m.busy[actionContexts] = false
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.contexts = msg.contexts
	rows := make([]table.Row, 0, len(msg.contexts))
	for _, c := range msg.contexts {
		rows = append(rows, table.Row{c.ID, c.Name, c.CompanyID, c.CompanyName, fmt.Sprintf("%d", c.ResourceCount)})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
	return m, nil
}

func (m Model) handleSelectDone(msg selectDoneMsg) (tea.Model, tea.Cmd) {
	m.busy[actionSelect] = false
	if msg.err != nil {
		return m.failed(msg.err)
	}
	return m.navigate(msg.view)
}

func (m Model) handleSendDone(msg sendDoneMsg) (tea.Model, tea.Cmd) {
	if m.sending > 0 {
		m.sending--
	}
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.err = nil
	m.chatInput.SetValue("")
	m.refreshConversation()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleResetDone(msg resetDoneMsg) (tea.Model, tea.Cmd) {
	m.busy[actionReset] = false
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.refreshConversation()
	return m, nil
}

func (m Model) handleFinishDone(msg finishDoneMsg) (tea.Model, tea.Cmd) {
	m.busy[actionFinish] = false
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.chatInput.SetValue("")
	return m.navigate(msg.view)
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.busy[actionExport] = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.status = "Exported to " + msg.path
	return m, clearStatusAfter(5 * time.Second)
}
