package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-session/internal"
)

// Run starts the interactive client on the alternate screen and blocks until
// the user quits
func Run(ctrl *internal.Controller, opts ...Option) error {
	p := tea.NewProgram(New(ctrl, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
