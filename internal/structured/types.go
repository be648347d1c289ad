package structured

import "fmt"

// Call is one structured completion. The model is seeded with
// {"<Key>": "<OutputPrefix> and is expected to finish the object.
type Call struct {
	Key          string
	Prompt       string
	OutputPrefix string
	MaxTokens    int
	Repair       Repairer
}

const maxQuoted = 500

func quote(text string) string {
	if len(text) > maxQuoted {
		text = text[:maxQuoted] + "..."
	}
	return fmt.Sprintf("%q", text)
}

// ShapeError means the completion does not hold exactly one balanced
// JSON object.
type ShapeError struct {
	Key    string
	Reason string
	Text   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("completion for %q is not a single object (%s): %s", e.Key, e.Reason, quote(e.Text))
}

// FieldError means the object did not parse or lacks Key as its only
// string field.
type FieldError struct {
	Key  string
	Text string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v: %s", e.Key, e.Err, quote(e.Text))
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UnsalvageableError means a repair strategy found nothing to repair.
// Cause is the parse error that triggered the repair.
type UnsalvageableError struct {
	Strategy string
	Text     string
	Err      error
	Cause    error
}

func (e *UnsalvageableError) Error() string {
	return fmt.Sprintf("repair %s: %v (after: %v)", e.Strategy, e.Err, e.Cause)
}

func (e *UnsalvageableError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}
