package interceptors

import (
	"context"

	"github.com/glimte/aspect-go/contracts"
)

// DefaultOrder is the sort key assigned to attachments that do not set an
// explicit order.
const DefaultOrder = 100

// Handler represents the continuation of an invocation chain: either the
// next interceptor or the terminal call into the implementation.
type Handler interface {
	Handle(ctx context.Context, inv *contracts.Invocation) error
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc func(ctx context.Context, inv *contracts.Invocation) error

// Handle implements Handler
func (f HandlerFunc) Handle(ctx context.Context, inv *contracts.Invocation) error {
	return f(ctx, inv)
}

// Interceptor processes an invocation before it reaches the real method
type Interceptor interface {
	// Intercept processes the invocation and calls the next handler in the
	// chain. Not calling next short-circuits the call.
	Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error

	// Name returns the interceptor name for logging and debugging
	Name() string
}

// InterceptorFunc is a function adapter for Interceptor
type InterceptorFunc struct {
	name string
	fn   func(ctx context.Context, inv *contracts.Invocation, next Handler) error
}

// NewInterceptorFunc creates a new function-based interceptor
func NewInterceptorFunc(name string, fn func(ctx context.Context, inv *contracts.Invocation, next Handler) error) *InterceptorFunc {
	return &InterceptorFunc{name: name, fn: fn}
}

// Intercept implements Interceptor
func (i *InterceptorFunc) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	return i.fn(ctx, inv, next)
}

// Name implements Interceptor
func (i *InterceptorFunc) Name() string {
	return i.name
}
