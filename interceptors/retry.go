package interceptors

import (
	"context"
	"log/slog"

	"github.com/glimte/aspect-go/contracts"
	"github.com/glimte/aspect-go/internal/backoff"
)

// RetryInterceptor re-runs the downstream chain when it fails, per a
// backoff policy. The invocation's argument list is reused across
// attempts; the result slot holds whatever the last attempt wrote.
type RetryInterceptor struct {
	policy backoff.Policy
	logger *slog.Logger
}

// NewRetryInterceptor creates a new retry interceptor
func NewRetryInterceptor(policy backoff.Policy) *RetryInterceptor {
	return &RetryInterceptor{
		policy: policy,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the retry interceptor
func (r *RetryInterceptor) WithLogger(logger *slog.Logger) *RetryInterceptor {
	r.logger = logger
	return r
}

// Intercept implements the Interceptor interface
func (r *RetryInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	attempt := 0
	return backoff.Retry(ctx, r.policy, func() error {
		attempt++
		err := next.Handle(ctx, inv)
		if err != nil {
			r.logger.Warn("invocation attempt failed",
				"invocationId", inv.ID,
				"method", inv.Method.Name,
				"attempt", attempt,
				"error", err,
			)
		}
		return err
	})
}

// Name returns the interceptor name
func (r *RetryInterceptor) Name() string {
	return "RetryInterceptor"
}
