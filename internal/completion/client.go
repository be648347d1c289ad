package completion

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Complete sends Prompt+OutputPrefix to the backend and returns
// OutputPrefix followed by the trimmed model output. Failures are not
// retried here.
func (c *implClient) Complete(ctx context.Context, req Request) (Result, error) {
	req = c.withDefaults(req)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	c.logger.Debug(ctx, "Requesting completion from %s (model: %s, max tokens: %d, prompt: %d chars)",
		c.backend.Name(), req.Model, req.MaxTokens, len(req.Prompt))

	gen, err := c.backend.Generate(ctx, req.Prompt+req.OutputPrefix, req)
	if err != nil {
		return Result{}, &Error{Backend: c.backend.Name(), Model: req.Model, Err: err}
	}

	text := req.OutputPrefix + strings.TrimSpace(gen.Text)
	c.logger.Debug(ctx, "Completion finished in %s (finish reason: %s, %d completion tokens)",
		time.Since(startTime).Round(time.Millisecond), gen.FinishReason, gen.Usage.CompletionTokens)

	model := gen.Model
	if model == "" {
		model = req.Model
	}
	return Result{
		Text:         text,
		Model:        model,
		FinishReason: gen.FinishReason,
		Usage:        gen.Usage,
	}, nil
}

func (c *implClient) withDefaults(req Request) Request {
	if req.Model == "" {
		req.Model = c.defaults.Model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.defaults.MaxTokens
	}
	if req.Temperature == nil {
		req.Temperature = c.defaults.Temperature
	}
	if req.TopP == 0 {
		req.TopP = c.defaults.TopP
	}
	if req.Stop == nil {
		req.Stop = c.defaults.Stop
	}
	return req
}

// errEmpty is returned by backends when the response carries no text.
var errEmpty = errors.New("empty response")
