package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/chat-session/internal/api"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation\n\n")

	if t.ContextID != "" {
		_, _ = fmt.Fprintf(w, "**Context:** %s  \n", t.ContextID)
	}
	if !t.ExportedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", t.ExportedAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Entries))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, entry := range t.Entries {
		content := escapeMarkdown(entry.Content)
		if entry.Role == api.RoleSystem {
			content = "_" + strings.TrimSpace(content) + "_"
		}

		_, err := fmt.Fprintf(w, "**%s:**\n\n%s\n\n", roleLabel(entry.Role), content)
		if err != nil {
			return err
		}

		if i < len(t.Entries)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func roleLabel(role string) string {
	switch role {
	case api.RoleUser:
		return "You"
	case api.RoleAssistant:
		return "Assistant"
	case api.RoleSystem:
		return "System"
	case "":
		return "unknown"
	default:
		return role
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
