package completion

import (
	"fmt"
)

// Request describes one completion. OutputPrefix is appended to the prompt
// and returned verbatim at the start of the result text. A nil Temperature
// takes the client default; zero is a valid temperature.
type Request struct {
	Prompt       string
	Model        string
	MaxTokens    int
	OutputPrefix string
	Temperature  *float32
	TopP         float32
	Stop         []string
}

// Float32 returns a pointer to v, for Request.Temperature.
func Float32(v float32) *float32 {
	return &v
}

// Result is a finished completion. Text includes the output prefix.
type Result struct {
	Text         string
	Model        string
	FinishReason string
	Usage        Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Generation is the raw output of a backend, without the prefix.
type Generation struct {
	Text         string
	Model        string
	FinishReason string
	Usage        Usage
}

// Error is returned for any backend failure: transport errors, rate
// limiting or malformed responses.
type Error struct {
	Backend string
	Model   string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s completion (%s): %v", e.Backend, e.Model, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
