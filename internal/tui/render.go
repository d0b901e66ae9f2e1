package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/chat-session/internal/api"
)

// refreshConversation redraws the viewport from the conversation model
func (m *Model) refreshConversation() {
	m.viewport.SetContent(renderConversation(m.ctrl.Conversation().Entries(), m.viewport.Width))
}

// renderConversation lays out entries the way the chat view shows them:
// user entries right-aligned, system entries italic and assistant entries
// rendered as markdown.
func renderConversation(entries []api.ConversationEntry, width int) string {
	if len(entries) == 0 {
		return helpStyle.Render("No messages yet.")
	}
	if width < 20 {
		width = 20
	}

	var renderer *glamour.TermRenderer
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Role {
		case api.RoleUser:
			bubble := userBubbleStyle.MaxWidth(width * 3 / 4).Render(e.Content)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		case api.RoleSystem:
			blocks = append(blocks, systemStyle.Width(width).Render(e.Content))
		default:
			if renderer == nil {
				renderer = newMarkdownRenderer(width)
			}
			blocks = append(blocks, assistantLabelStyle.Render(roleName(e.Role))+"\n"+renderMarkdown(renderer, e.Content))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func roleName(role string) string {
	if role == api.RoleAssistant || role == "" {
		return "Assistant"
	}
	return role
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderMarkdown falls back to the plain text when rendering fails
func renderMarkdown(r *glamour.TermRenderer, text string) string {
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
