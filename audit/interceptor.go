package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/glimte/aspect-go/contracts"
	"github.com/glimte/aspect-go/interceptors"
)

// Interceptor records every invocation that passes through it. The
// publisher may be set at construction or injected from the provider per
// call.
type Interceptor struct {
	Publisher *Publisher `inject:""`
	logger    *slog.Logger
}

// NewInterceptor creates an audit interceptor with an explicit publisher
func NewInterceptor(publisher *Publisher, logger *slog.Logger) *Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interceptor{Publisher: publisher, logger: logger}
}

// Intercept implements interceptors.Interceptor
func (i *Interceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next interceptors.Handler) error {
	start := time.Now()
	err := next.Handle(ctx, inv)

	record := Record{
		InvocationID: inv.ID,
		Contract:     inv.Method.Contract.String(),
		Method:       inv.Method.Name,
		Timestamp:    inv.Timestamp,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if err != nil {
		record.Error = err.Error()
	}

	logger := i.logger
	if logger == nil {
		logger = slog.Default()
	}
	if pubErr := i.Publisher.Publish(ctx, record); pubErr != nil {
		logger.Error("failed to publish audit record",
			"invocationId", inv.ID,
			"method", inv.Method.Name,
			"error", pubErr,
		)
	}

	return err
}

// Name implements interceptors.Interceptor
func (i *Interceptor) Name() string {
	return "AuditInterceptor"
}
