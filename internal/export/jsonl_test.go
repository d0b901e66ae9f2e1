package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONLExporter{}).Export(testTranscript(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var entries []jsonlEntry
	for _, line := range lines {
		var e jsonlEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e), "line %q", line)
		entries = append(entries, e)
	}
	assert.Equal(t, "system", entries[0].Role)
	assert.Equal(t, 1, entries[1].Index)
	assert.Equal(t, "How many machines do we have?", entries[1].Content)
	assert.Equal(t, "u1", entries[2].ContextID)
}

func TestJSONLExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONLExporter{}).Export(NewTranscript("", nil), &buf))
	assert.Empty(t, buf.String())
}
