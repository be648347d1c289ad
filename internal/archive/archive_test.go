package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRunID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func TestWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	rec := NewRecord(testRunID, summarizer.Transcript{
		Episode:          summarizer.Episode{Podcast: "Show", Title: "Episode One"},
		Raw:              "Sentence one. Sentence two.",
		SnippetSummaries: []string{"one", "two"},
		Merged:           "merged",
		SponsorFree:      "clean",
		Dialog:           "Welcome back.",
	})

	path, err := Write(rec, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, testRunID+".json.zst"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Show", got.Podcast)
	assert.Equal(t, "Episode One", got.Episode)
	assert.Equal(t, []string{"one", "two"}, got.SnippetSummaries)
	assert.Equal(t, "Welcome back.", got.Dialog)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestWriteRequiresRunID(t *testing.T) {
	_, err := Write(Record{}, t.TempDir())
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json.zst"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "plain.json.zst")
	require.NoError(t, os.WriteFile(path, []byte(`{"run_id": "x"}`), 0o644))
	_, err = Read(path)
	assert.Error(t, err)
}
