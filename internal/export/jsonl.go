package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLExporter exports transcripts in JSONL format (one entry per line)
type JSONLExporter struct{}

type jsonlEntry struct {
	Index     int    `json:"index"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	ContextID string `json:"context_id,omitempty"`
}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(t *Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i, entry := range t.Entries {
		line := jsonlEntry{
			Index:     i,
			Role:      entry.Role,
			Content:   entry.Content,
			ContextID: t.ContextID,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode entry %d: %w", i, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
