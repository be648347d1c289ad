package structured

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/podcast2podcast/internal/completion"
)

// Complete asks the model to fill call.Key and returns its value.
func (e *implEngine) Complete(ctx context.Context, call Call) (string, error) {
	if call.Key == "" {
		return "", errors.New("structured call without a key")
	}

	res, err := e.completer.Complete(ctx, completion.Request{
		Prompt:       call.Prompt,
		OutputPrefix: Seed(call.Key, call.OutputPrefix),
		MaxTokens:    call.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	value, repaired, err := parse(res.Text, call.Key, call.Repair)
	if err != nil {
		e.logger.Warn(ctx, "Malformed %q completion (finish reason: %s): %v", call.Key, res.FinishReason, err)
		return "", err
	}
	if repaired {
		e.logger.Info(ctx, "Repaired %q completion with %s", call.Key, call.Repair.Name())
	}
	return value, nil
}

// IsShapeError reports whether err comes from malformed model output
// rather than from the backend.
func IsShapeError(err error) bool {
	var (
		shape *ShapeError
		field *FieldError
		unsal *UnsalvageableError
	)
	return errors.As(err, &shape) || errors.As(err, &field) || errors.As(err, &unsal)
}
