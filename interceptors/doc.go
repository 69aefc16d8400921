// Package interceptors provides ordered, attachable cross-cutting behavior
// for proxied service calls.
//
// An Interceptor wraps a contract method invocation without modifying the
// implementation or the caller. Interceptors are attached to a Registry at
// one of four attachment points:
//   - the contract interface type
//   - the implementation type
//   - a single contract method
//   - a single implementation method
//
// For each call the registry collects the applicable attachments in that
// fixed precedence, each bucket sorted ascending by order (ties keep
// attachment order), and the proxy executes them as a chain terminating in
// the real method call. The first collected interceptor is outermost: its
// pre-processing runs first and its post-processing runs last.
//
// Attachments register factories, not instances. A fresh interceptor
// instance is built for every call, so concurrent calls through the same
// proxy never share chain state, and injected dependencies are resolved
// fresh on every call.
//
// Built-in interceptors:
//   - LoggingInterceptor: logs invocations with timing information
//   - ValidationInterceptor: validates invocations before delegation
//   - RetryInterceptor: re-runs the downstream chain per a retry policy
//   - TimeoutInterceptor: bounds downstream execution time
//   - CachingInterceptor: serves repeated calls from a cache
//
// Custom interceptors implement the Interceptor interface:
//
//	type CustomInterceptor struct {}
//
//	func (i *CustomInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
//		// Pre-processing logic
//		err := next.Handle(ctx, inv)
//		// Post-processing logic
//		return err
//	}
//
//	func (i *CustomInterceptor) Name() string {
//		return "CustomInterceptor"
//	}
//
// Skipping the call to next short-circuits the chain; whatever the
// interceptor leaves in the invocation's result slot is returned to the
// caller.
package interceptors
