package tui

import (
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
)

// Results of the network commands. Each carries the error the action failed
// with, if any, and the view the controller asked for where relevant.
type loginDoneMsg struct {
	view internal.View
	err  error
}

type contextsMsg struct {
	contexts []api.UserContext
	err      error
}

type selectDoneMsg struct {
	view internal.View
	err  error
}

type sendDoneMsg struct{ err error }

type resetDoneMsg struct{ err error }

type finishDoneMsg struct {
	view internal.View
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}
