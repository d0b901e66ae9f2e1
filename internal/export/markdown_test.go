package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-session/internal/api"
)

func TestMarkdownExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(testTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Conversation",
		"**Context:** u1",
		"**Exported:** 2024-05-01T09:30:00Z",
		"**Messages:** 3",
		"**System:**\n\n_User Taro Yamada selected_",
		"**You:**\n\nHow many machines do we have?",
		"**Assistant:**",
		`You have \*\*3\*\* machines.`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.HasSuffix(strings.TrimSpace(out), "---") {
		t.Error("output should not end with a separator")
	}
}

func TestMarkdownExporter_EmptyTranscript(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(&Transcript{}, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "**Context:**") || strings.Contains(out, "**Exported:**") {
		t.Errorf("empty transcript should omit context and time:\n%s", out)
	}
	if !strings.Contains(out, "**Messages:** 0") {
		t.Errorf("expected message count:\n%s", out)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold", "**bold**", `\*\*bold\*\*`},
		{"underscore", "__x__", `\_\_x\_\_`},
		{"code block kept", "```\n**x**\n```", "```\n**x**\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeMarkdown(tt.in); got != tt.want {
				t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoleLabel(t *testing.T) {
	cases := map[string]string{
		api.RoleUser:      "You",
		api.RoleAssistant: "Assistant",
		api.RoleSystem:    "System",
		"":                "unknown",
		"tool":            "tool",
	}
	for role, want := range cases {
		if got := roleLabel(role); got != want {
			t.Errorf("roleLabel(%q) = %q, want %q", role, got, want)
		}
	}
}
