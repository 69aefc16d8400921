package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/glimte/aspect-go/contracts"
)

// LoggingInterceptor logs invocation processing
type LoggingInterceptor struct {
	logger *slog.Logger
}

// NewLoggingInterceptor creates a new logging interceptor
func NewLoggingInterceptor(logger *slog.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingInterceptor{logger: logger}
}

// Intercept implements Interceptor
func (i *LoggingInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	start := time.Now()

	i.logger.Info("invoking method",
		"invocationId", inv.ID,
		"contract", inv.Method.Contract.String(),
		"method", inv.Method.Name,
	)

	err := next.Handle(ctx, inv)
	duration := time.Since(start)

	if err != nil {
		i.logger.Error("invocation failed",
			"invocationId", inv.ID,
			"method", inv.Method.Name,
			"duration", duration,
			"error", err,
		)
	} else {
		i.logger.Info("invocation completed",
			"invocationId", inv.ID,
			"method", inv.Method.Name,
			"duration", duration,
		)
	}

	return err
}

// Name implements Interceptor
func (i *LoggingInterceptor) Name() string {
	return "LoggingInterceptor"
}
