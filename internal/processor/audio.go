package processor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	audioExtensions      = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".opus", ".flac"}
	transcriptExtensions = []string{".txt"}
)

// IsAudioFile checks if the file has a supported audio extension
func IsAudioFile(path string) bool {
	return hasExtension(path, audioExtensions)
}

// IsTranscriptFile checks if the file is a plain text transcript
func IsTranscriptFile(path string) bool {
	return hasExtension(path, transcriptExtensions)
}

// IsSupported reports whether Process accepts the file.
func IsSupported(path string) bool {
	return IsAudioFile(path) || IsTranscriptFile(path)
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// download fetches audioURL into dir and returns the local path. The file
// keeps the extension of the URL path so ffmpeg can probe it.
func (p *implProcessor) download(ctx context.Context, audioURL, dir string) (string, error) {
	ext := ".mp3"
	if u, err := url.Parse(audioURL); err == nil {
		if e := filepath.Ext(u.Path); e != "" {
			ext = e
		}
	}
	dest := filepath.Join(dir, "source"+ext)

	p.logger.Info(ctx, "Downloading audio: %s", audioURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download audio: %s", resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	p.logger.Debug(ctx, "Downloaded %d bytes to %s", n, dest)
	return dest, nil
}
