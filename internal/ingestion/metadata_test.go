package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)

	metadata := NewMetadata("resume.pdf", "Jos\u00e9 Doe", 2)

	assert.Equal(t, "resume.pdf", metadata.FileName)
	assert.Equal(t, 2, metadata.Pages)
	assert.Equal(t, 8, metadata.TextLength)
	assert.Len(t, metadata.Hash, 64)

	ts, err := time.Parse(time.RFC3339, metadata.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
}

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		FileName:   "resume.pdf",
		Timestamp:  "2024-01-01T00:00:00Z",
		Hash:       "abcd1234",
		Pages:      1,
		TextLength: 120,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
	assert.Contains(t, string(jsonBytes), `"text_length": 120`)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}
