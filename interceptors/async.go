package interceptors

import (
	"context"
	"fmt"

	"github.com/glimte/aspect-go/contracts"
)

// AsyncBody is an interceptor body that runs on its own goroutine while
// the chain remains synchronous around it.
type AsyncBody func(ctx context.Context, inv *contracts.Invocation, next Handler) error

// AsyncInterceptor runs its body asynchronously and blocks the chain until
// the body completes, so asynchronous work is observably synchronous to
// every other link. The caller's context bounds the wait: on cancellation
// the chain resumes with ctx.Err() and the detached body's outcome is
// discarded.
//
// A fault in the body is re-raised on the chain's goroutine. Errors
// returned by the body propagate unchanged. A panic is captured and
// surfaced as *contracts.AsyncError; a panic carrying no value at all
// synthesizes the generic contracts.ErrAsyncFault.
type AsyncInterceptor struct {
	name string
	body AsyncBody
}

// Async creates an interceptor from an asynchronous body.
func Async(name string, body AsyncBody) *AsyncInterceptor {
	return &AsyncInterceptor{name: name, body: body}
}

// Intercept implements Interceptor
func (a *AsyncInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- &contracts.AsyncError{Interceptor: a.name, Err: faultOf(r)}
			}
		}()
		done <- a.body(ctx, inv, next)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Name implements Interceptor
func (a *AsyncInterceptor) Name() string {
	return a.name
}

func faultOf(recovered any) error {
	switch v := recovered.(type) {
	case error:
		if v == nil {
			return contracts.ErrAsyncFault
		}
		return v
	default:
		if v == nil {
			return contracts.ErrAsyncFault
		}
		return fmt.Errorf("panic: %v", v)
	}
}
