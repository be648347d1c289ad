// Package retry runs whole logical operations with a bounded number of
// attempts and exponential backoff between them.
package retry

import (
	"context"
	"errors"
	"math"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy bounds the attempts of an operation. The wait after the k-th
// failed attempt (k starting at 1) is Unit * Base^k.
type Policy struct {
	Attempts int
	Base     float64
	Unit     time.Duration

	// Immediate reports errors for which the next attempt starts without
	// waiting. Nil means every error waits for the backoff.
	Immediate func(error) bool

	// OnRetry is called before each new attempt.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Default is three attempts waiting 2s then 4s.
var Default = Policy{Attempts: 3, Base: 2, Unit: time.Second}

// Delay returns the wait after the given failed attempt.
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(float64(p.Unit) * math.Pow(p.Base, float64(attempt)))
}

type stopError struct {
	err error
}

func (e *stopError) Error() string { return e.err.Error() }
func (e *stopError) Unwrap() error { return e.err }

// Stop marks err as permanent: Do returns it without further attempts.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// Do calls fn until it succeeds, returns a Stop error, the context ends or
// the policy's attempts are used up. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		lastErr error
		failed  int
	)
	backoff := goretry.BackoffFunc(func() (time.Duration, bool) {
		failed++
		wait := p.Delay(failed)
		if p.Immediate != nil && p.Immediate(lastErr) {
			wait = 0
		}
		if p.OnRetry != nil {
			p.OnRetry(failed+1, wait, lastErr)
		}
		return wait, false
	})

	err := goretry.Do(ctx, goretry.WithMaxRetries(uint64(attempts-1), backoff), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var stop *stopError
		if errors.As(err, &stop) {
			return stop.err
		}
		lastErr = err
		return goretry.RetryableError(err)
	})
	return err
}
