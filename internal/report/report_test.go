package report

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentXML(t *testing.T, path string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.docx")
	err := WriteDocx(summarizer.Transcript{
		Episode:          summarizer.Episode{Podcast: "Show", Title: "Episode One"},
		Raw:              "Sentence one.\nSentence two.",
		SnippetSummaries: []string{"first part", "second part"},
		Merged:           "merged text",
		SponsorFree:      "clean text",
		Dialog:           "Welcome back.",
	}, path)
	require.NoError(t, err)

	body := documentXML(t, path)
	for _, want := range []string{"Show: Episode One", "Final dialog", "Welcome back.", "Snippet summaries", "second part", "Raw transcript", "Sentence two."} {
		assert.Contains(t, body, want)
	}
	assert.Less(t, strings.Index(body, "Welcome back."), strings.Index(body, "merged text"))
}

func TestWriteDocxSkipsEmptyStages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.docx")
	require.NoError(t, WriteDocx(summarizer.Transcript{
		Episode:     summarizer.Episode{Podcast: "Show", Title: "Ep"},
		Description: "From the feed.",
		SponsorFree: "short",
		Dialog:      "Hi.",
	}, path))

	body := documentXML(t, path)
	assert.Contains(t, body, "Episode description")
	assert.Contains(t, body, "From the feed.")
	assert.NotContains(t, body, "Raw transcript")
	assert.NotContains(t, body, "Merged summary")
}
