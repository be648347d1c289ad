package transcriber

import "context"

// Transcriber turns speech into plain text.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
