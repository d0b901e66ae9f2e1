package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/api"
	"github.com/iksnae/chat-session/internal/export"
)

// Network commands run off the update loop. The controller and its
// conversation are safe to call from these goroutines.

func (m Model) loginCmd(creds api.Credentials) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		view, err := ctrl.Login(context.Background(), creds)
		return loginDoneMsg{view: view, err: err}
	}
}

func (m Model) fetchContextsCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		contexts, err := ctrl.Contexts(context.Background())
		return contextsMsg{contexts: contexts, err: err}
	}
}

func (m Model) selectCmd(contextID string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		view, err := ctrl.SelectContext(context.Background(), contextID)
		return selectDoneMsg{view: view, err: err}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return sendDoneMsg{err: ctrl.Send(context.Background(), text)}
	}
}

func (m Model) resetCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return resetDoneMsg{err: ctrl.Reset(context.Background())}
	}
}

func (m Model) finishCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		view, err := ctrl.Finish(context.Background())
		return finishDoneMsg{view: view, err: err}
	}
}

// exportCmd writes the displayed conversation to a timestamped file in dir
func exportCmd(dir, format string, t *export.Transcript) tea.Cmd {
	return func() tea.Msg {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		name := fmt.Sprintf("conversation-%s.%s", t.ExportedAt.Format("20060102-150405"), exporter.Extension())
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: &internal.ExportError{Format: format, Path: path, Err: err}}
		}
		defer func() { _ = f.Close() }()

		if err := exporter.Export(t, f); err != nil {
			return exportDoneMsg{err: &internal.ExportError{Format: format, Path: path, Err: err}}
		}
		return exportDoneMsg{path: path}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

type clearStatusMsg struct{}
