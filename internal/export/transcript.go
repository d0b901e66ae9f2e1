package export

import (
	"time"

	"github.com/iksnae/chat-session/internal/api"
)

// Transcript is a snapshot of the conversation shown in the chat view
type Transcript struct {
	ContextID  string                  `json:"context_id,omitempty" yaml:"context_id,omitempty"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Entries    []api.ConversationEntry `json:"entries" yaml:"entries"`
}

// NewTranscript snapshots entries for the given context
func NewTranscript(contextID string, entries []api.ConversationEntry) *Transcript {
	if entries == nil {
		entries = []api.ConversationEntry{}
	}
	return &Transcript{
		ContextID:  contextID,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Entries:    entries,
	}
}
