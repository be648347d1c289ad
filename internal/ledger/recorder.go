package ledger

import (
	"context"

	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

// RunRecorder writes summarizer stages into one run.
type RunRecorder struct {
	Ledger Ledger
	RunID  string
}

func (r RunRecorder) Record(ctx context.Context, stage summarizer.Stage, seq int, content string) error {
	return r.Ledger.Record(ctx, r.RunID, stage.String(), seq, content)
}
