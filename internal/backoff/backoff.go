package backoff

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Policy decides whether a failed attempt is retried and how long to wait.
type Policy interface {
	// ShouldRetry determines if a retry should be attempted
	ShouldRetry(attempt int, err error) (bool, time.Duration)
	// MaxRetries returns the maximum number of retries
	MaxRetries() int
}

// Exponential implements exponential backoff with optional jitter
type Exponential struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxAttempts     int
	Jitter          bool
}

// NewExponential creates an exponential backoff policy
func NewExponential(initial, max time.Duration, multiplier float64, maxRetries int) *Exponential {
	return &Exponential{
		InitialInterval: initial,
		MaxInterval:     max,
		Multiplier:      multiplier,
		MaxAttempts:     maxRetries,
		Jitter:          true,
	}
}

// ShouldRetry implements Policy
func (e *Exponential) ShouldRetry(attempt int, err error) (bool, time.Duration) {
	if attempt >= e.MaxAttempts || IsPermanent(err) {
		return false, 0
	}

	delay := float64(e.InitialInterval) * math.Pow(e.Multiplier, float64(attempt))
	if delay > float64(e.MaxInterval) {
		delay = float64(e.MaxInterval)
	}

	if e.Jitter {
		jitter := rand.Float64() * 0.3 * delay // ±15% jitter
		delay = delay + jitter - (0.15 * delay)
	}

	return true, time.Duration(delay)
}

// MaxRetries implements Policy
func (e *Exponential) MaxRetries() int {
	return e.MaxAttempts
}

// Fixed implements a fixed-delay retry policy
type Fixed struct {
	Delay       time.Duration
	MaxAttempts int
}

// NewFixed creates a fixed-delay policy
func NewFixed(delay time.Duration, maxRetries int) *Fixed {
	return &Fixed{Delay: delay, MaxAttempts: maxRetries}
}

// ShouldRetry implements Policy
func (f *Fixed) ShouldRetry(attempt int, err error) (bool, time.Duration) {
	if attempt >= f.MaxAttempts || IsPermanent(err) {
		return false, 0
	}
	return true, f.Delay
}

// MaxRetries implements Policy
func (f *Fixed) MaxRetries() int {
	return f.MaxAttempts
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks an error as non-retryable regardless of policy.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether the error was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Retry executes fn until it succeeds, the policy gives up, or the
// context is done. The last attempt's error is returned on give-up;
// permanent errors are unwrapped before returning.
func Retry(ctx context.Context, policy Policy, fn func() error) error {
	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		shouldRetry, delay := policy.ShouldRetry(attempt, err)
		if !shouldRetry {
			var p *permanentError
			if errors.As(err, &p) {
				return p.err
			}
			return err
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
