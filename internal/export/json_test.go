package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	want := testTranscript()
	require.NoError(t, (&JSONExporter{}).Export(want, &buf))

	assert.Contains(t, buf.String(), "\n  \"context_id\": \"u1\"")

	var got Transcript
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want.Entries, got.Entries)
	assert.True(t, want.ExportedAt.Equal(got.ExportedAt))
}

func TestJSONExporter_EmptyEntriesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONExporter{}).Export(NewTranscript("u2", nil), &buf))
	assert.Contains(t, buf.String(), `"entries": []`)
}
