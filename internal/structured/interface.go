//go:generate mockgen -source=interface.go -destination=mock_engine.go -package=structured

package structured

import "context"

// Engine turns a free-form completion into the string value of a single
// key JSON object.
type Engine interface {
	Complete(ctx context.Context, call Call) (string, error)
}

// Repairer rewrites a malformed completion into one that may parse.
// Implementations are pure and leave already valid input unchanged.
type Repairer interface {
	Name() string
	Repair(text string) (string, error)
}
