package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/chapter"
)

const sampleInfo = `{
  "id": "abc123",
  "title": "SAT Tips: Part 1",
  "upload_date": "20240615",
  "duration": 600,
  "webpage_url": "https://www.youtube.com/watch?v=abc123",
  "chapters": [
    {"start_time": 0, "end_time": 90, "title": "Intro"},
    {"start_time": 90, "end_time": 600, "title": "Deep Dive"}
  ]
}`

func TestDecode(t *testing.T) {
	info, err := Decode(strings.NewReader(sampleInfo))
	require.NoError(t, err)

	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "2024-06-15", info.PublishedDate())
	assert.Equal(t, "2024-06-15_SAT Tips_ Part 1", info.Stem())
	assert.Equal(t, []chapter.Boundary{
		{Index: 0, StartSeconds: 0, Title: "Intro"},
		{Index: 1, StartSeconds: 90, Title: "Deep Dive"},
	}, info.Boundaries())
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing title":    `{"id": "x"}`,
		"negative chapter": `{"id": "x", "title": "t", "chapters": [{"start_time": -5, "title": "bad"}]}`,
		"not json":         `{`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestPublishedDate(t *testing.T) {
	ts := 1718445000.0
	assert.Equal(t, "2024-06-15", (&Info{Timestamp: &ts}).PublishedDate())
	assert.Equal(t, "2024-06-15", (&Info{ReleaseDate: "2024-06-15T00:00:00Z"}).PublishedDate())
	assert.Equal(t, "unknown-date", (&Info{}).PublishedDate())
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=zz", (&Info{ID: "zz"}).Link())
	assert.Equal(t, "https://example.com/v", (&Info{ID: "zz", URL: "https://example.com/v"}).Link())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a"+InfoSuffix)
	require.NoError(t, os.WriteFile(path, []byte(sampleInfo), 0644))

	info, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, info.Chapters, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDecodePlaylist(t *testing.T) {
	data := []byte(`{"id": "chan", "entries": [
		{"id": "a", "title": "First", "url": "https://www.youtube.com/watch?v=a"},
		{"id": "b"},
		{"id": "c", "title": "Third"}
	]}`)

	entries, err := DecodePlaylist(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
}
