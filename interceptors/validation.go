package interceptors

import (
	"context"
	"fmt"

	"github.com/glimte/aspect-go/contracts"
)

// ValidationInterceptor validates invocations before they reach the
// implementation
type ValidationInterceptor struct {
	validator Validator
}

// Validator defines the interface for invocation validation
type Validator interface {
	Validate(ctx context.Context, inv *contracts.Invocation) error
}

// ValidatorFunc is a function adapter for Validator
type ValidatorFunc func(ctx context.Context, inv *contracts.Invocation) error

// Validate implements Validator
func (f ValidatorFunc) Validate(ctx context.Context, inv *contracts.Invocation) error {
	return f(ctx, inv)
}

// NewValidationInterceptor creates a new validation interceptor
func NewValidationInterceptor(validator Validator) *ValidationInterceptor {
	return &ValidationInterceptor{validator: validator}
}

// Intercept implements Interceptor
func (i *ValidationInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	if err := i.validator.Validate(ctx, inv); err != nil {
		return fmt.Errorf("invocation validation failed: %w", err)
	}

	return next.Handle(ctx, inv)
}

// Name implements Interceptor
func (i *ValidationInterceptor) Name() string {
	return "ValidationInterceptor"
}
