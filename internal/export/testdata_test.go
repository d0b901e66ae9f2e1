package export

import (
	"time"

	"github.com/iksnae/chat-session/internal/api"
)

func testTranscript() *Transcript {
	return &Transcript{
		ContextID:  "u1",
		ExportedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Entries: []api.ConversationEntry{
			{Role: api.RoleSystem, Content: "User Taro Yamada selected"},
			{Role: api.RoleUser, Content: "How many machines do we have?"},
			{Role: api.RoleAssistant, Content: "You have **3** machines."},
		},
	}
}
