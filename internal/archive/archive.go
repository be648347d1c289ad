// Package archive stores the transcripts of finished runs as
// zstd-compressed JSON.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

// Record is the archived form of one run.
type Record struct {
	RunID            string    `json:"run_id"`
	Podcast          string    `json:"podcast"`
	Episode          string    `json:"episode"`
	CreatedAt        time.Time `json:"created_at"`
	Raw              string    `json:"raw_transcript,omitempty"`
	Description      string    `json:"description,omitempty"`
	SnippetSummaries []string  `json:"snippet_summaries,omitempty"`
	Merged           string    `json:"merged_summary,omitempty"`
	SponsorFree      string    `json:"sponsor_free_summary,omitempty"`
	Dialog           string    `json:"dialog"`
}

// NewRecord captures a transcript for archiving.
func NewRecord(runID string, t summarizer.Transcript) Record {
	return Record{
		RunID:            runID,
		Podcast:          t.Episode.Podcast,
		Episode:          t.Episode.Title,
		CreatedAt:        time.Now().UTC(),
		Raw:              t.Raw,
		Description:      t.Description,
		SnippetSummaries: t.SnippetSummaries,
		Merged:           t.Merged,
		SponsorFree:      t.SponsorFree,
		Dialog:           t.Dialog,
	}
}

// Write compresses rec into archiveDir/{run-id}.json.zst and returns the
// archive path.
func Write(rec Record, archiveDir string) (string, error) {
	if rec.RunID == "" {
		return "", fmt.Errorf("record has no run ID")
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	destPath := Path(rec.RunID, archiveDir)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if err := json.NewEncoder(encoder).Encode(rec); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}
	return destPath, nil
}

// Read decompresses an archive written by Write.
func Read(archivePath string) (Record, error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return Record{}, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return Record{}, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var rec Record
	if err := json.NewDecoder(decoder).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("decompress: %w", err)
	}
	return rec, nil
}

// Path returns the deterministic archive path for a run ID.
func Path(runID, archiveDir string) string {
	return filepath.Join(archiveDir, runID+".json.zst")
}
