package ledger

import "context"

// Ledger keeps an append-only history of pipeline runs and the value each
// stage produced.
type Ledger interface {
	Start(ctx context.Context, podcast, episode string) (Run, error)
	Record(ctx context.Context, runID, stage string, seq int, content string) error
	Finish(ctx context.Context, runID string, runErr error) error

	Run(ctx context.Context, runID string) (Run, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
	Stages(ctx context.Context, runID string) ([]StageRecord, error)

	Close() error
}
