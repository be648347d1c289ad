package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/podcast2podcast/internal/archive"
	"github.com/nguyentantai21042004/podcast2podcast/internal/feed"
	"github.com/nguyentantai21042004/podcast2podcast/internal/report"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

// writeArtifacts saves the DOCX report and the compressed archive. Both are
// secondary outputs: failures are logged and leave the path empty.
func (p *implProcessor) writeArtifacts(ctx context.Context, runID, base string, t summarizer.Transcript) (string, string) {
	reportPath := base + ".docx"
	if err := report.WriteDocx(t, reportPath); err != nil {
		p.logger.Warn(ctx, "Failed to write report: %v", err)
		reportPath = ""
	}

	archivePath, err := archive.Write(archive.NewRecord(runID, t), filepath.Join(p.cfg.Paths.Output, "archive"))
	if err != nil {
		p.logger.Warn(ctx, "Failed to archive run %s: %v", runID, err)
		archivePath = ""
	}
	return reportPath, archivePath
}

// moveToProcessed moves an inbox file out of the watched folder
func (p *implProcessor) moveToProcessed(ctx context.Context, path string) error {
	dir := filepath.Join(p.cfg.Paths.Output, "processed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(path))
	p.logger.Info(ctx, "Moving to processed folder: %s -> %s", path, dest)
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to processed: %w", err)
	}
	return nil
}

// cleanupTempDir removes a temporary directory, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

// outputName builds an ASCII file name from the podcast and episode.
func outputName(podcast, episode string) string {
	name := feed.Transliterate(strings.TrimSpace(podcast + " " + episode))

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "episode"
	}
	if len(out) > 100 {
		out = strings.TrimSuffix(out[:100], "-")
	}
	return out
}
