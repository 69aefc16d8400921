package interceptors

import (
	"context"

	"github.com/glimte/aspect-go/contracts"
)

// Chain executes a sequence of interceptor instances around a terminal
// handler. A chain is built fresh per call from the bindings the registry
// collected; the instances it holds belong to that call alone.
type Chain struct {
	interceptors []Interceptor
}

// NewChain creates a chain over call-scoped interceptor instances
func NewChain(interceptors ...Interceptor) *Chain {
	return &Chain{interceptors: interceptors}
}

// Len returns the number of links excluding the terminal handler
func (c *Chain) Len() int {
	return len(c.interceptors)
}

// Execute runs the chain. The first interceptor is outermost: it sees the
// invocation before all others and sees the results last. The terminal
// handler performs the real method call.
//
// Errors from any link propagate unchanged to the caller; the chain never
// swallows them.
func (c *Chain) Execute(ctx context.Context, inv *contracts.Invocation, terminal Handler) error {
	if len(c.interceptors) == 0 {
		return terminal.Handle(ctx, inv)
	}

	// Wrap back to front so the first interceptor ends up outermost. Each
	// link gets a fresh closure; nothing is mutated on the instances.
	handler := terminal
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		interceptor := c.interceptors[i]
		next := handler
		handler = HandlerFunc(func(ctx context.Context, inv *contracts.Invocation) error {
			return interceptor.Intercept(ctx, inv, next)
		})
	}

	return handler.Handle(ctx, inv)
}

// Build instantiates one interceptor per binding and injects declared
// dependencies into each instance. It fails before any interceptor body
// can run if a dependency cannot be resolved, including when an instance
// declares injectable fields and no provider was configured at all.
func Build(bindings []Binding, injector *Injector) (*Chain, error) {
	instances := make([]Interceptor, 0, len(bindings))
	for _, b := range bindings {
		instance := b.Factory()
		if err := injector.Inject(instance); err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}
	return NewChain(instances...), nil
}
