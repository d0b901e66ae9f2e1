package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/chat-session/internal"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	switch m.view {
	case internal.ViewLogin:
		b.WriteString(m.renderLogin())
	case internal.ViewSelectContext:
		b.WriteString(m.renderSelect())
	case internal.ViewChat:
		b.WriteString(m.renderChat())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	return b.String()
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Log in") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("User ID"), m.userInput.View()) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Password"), m.passwordInput.View()) + "\n")
	if m.busy[actionLogin] {
		b.WriteString(m.spinner.View() + " Logging in...\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: switch field • enter: log in • esc: quit"))
	return b.String()
}

func (m Model) renderSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a context") + "\n")
	switch {
	case m.busy[actionContexts]:
		b.WriteString(m.spinner.View() + " Loading contexts...\n")
	case len(m.contexts) == 0 && m.err == nil:
		b.WriteString(helpStyle.Render("No contexts available.") + "\n")
	default:
		b.WriteString(frameStyle.Render(m.table.View()) + "\n")
	}
	if m.busy[actionSelect] {
		b.WriteString(m.spinner.View() + " Selecting...\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: move • enter: select • r: reload • l: log out • q: quit"))
	return b.String()
}

func (m Model) renderChat() string {
	var b strings.Builder
	title := "Chat"
	if sess, ok := m.ctrl.Session(); ok && sess.ContextID != "" {
		title += " · " + sess.ContextID
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(frameStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(m.chatInput.View() + "\n")

	var pending []string
	if m.sending > 0 {
		pending = append(pending, "sending")
	}
	if m.busy[actionReset] {
		pending = append(pending, "resetting")
	}
	if m.busy[actionFinish] {
		pending = append(pending, "finishing")
	}
	if len(pending) > 0 {
		b.WriteString(m.spinner.View() + " " + strings.Join(pending, ", ") + "...\n")
	}
	b.WriteString(helpStyle.Render("enter: send • ctrl+r: reset • ctrl+f: finish • ctrl+e: export • esc: contexts • ctrl+c: quit"))
	return b.String()
}
