//go:generate mockgen -source=interface.go -destination=mock_executor.go -package=executor

package executor

import "context"

// Executor runs external programs (ffmpeg, whisper.cpp, TTS commands).
type Executor interface {
	// Execute runs name with args and returns its standard output.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir is Execute with dir as the working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
