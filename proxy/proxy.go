package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/glimte/aspect-go/contracts"
	"github.com/glimte/aspect-go/interceptors"
)

// Proxy fronts one implementation instance behind the contract interface
// T. It holds non-owning references to the implementation, the interceptor
// registry, and the dependency provider; lifetime scoping belongs entirely
// to the container that resolved it.
type Proxy[T any] struct {
	target   T
	contract reflect.Type
	implType reflect.Type
	methods  map[string]contracts.Method
	bound    map[string]reflect.Value
	registry *interceptors.Registry
	provider interceptors.Provider
	logger   *slog.Logger
}

// Option configures a proxy at construction time
type Option[T any] func(*Proxy[T])

// WithRegistry sets the interceptor registry consulted on every call.
func WithRegistry[T any](registry *interceptors.Registry) Option[T] {
	return func(p *Proxy[T]) {
		p.registry = registry
	}
}

// WithProvider sets the dependency provider used to inject interceptor
// instances before each call.
func WithProvider[T any](provider interceptors.Provider) Option[T] {
	return func(p *Proxy[T]) {
		p.provider = provider
	}
}

// WithLogger sets the proxy logger
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(p *Proxy[T]) {
		p.logger = logger
	}
}

// WithInitializer runs fn with the freshly constructed proxy and its
// backing implementation before New returns, so callers can attach
// auxiliary state. No interceptor logic runs at construction time.
func WithInitializer[T any](fn func(p *Proxy[T], target T)) Option[T] {
	return func(p *Proxy[T]) {
		fn(p, p.target)
	}
}

// New wraps target behind the contract interface T.
//
// Passing an existing *Proxy[T] returns it unchanged, so wrapping is
// idempotent and never double-wraps. Otherwise target must satisfy T, and
// T must be an interface type; violations surface as *contracts.ConfigError
// here, never at call time.
func New[T any](target any, opts ...Option[T]) (*Proxy[T], error) {
	if existing, ok := target.(*Proxy[T]); ok {
		return existing, nil
	}

	contract, err := contracts.ContractOf[T]()
	if err != nil {
		return nil, err
	}

	impl, ok := target.(T)
	if !ok {
		return nil, &contracts.ConfigError{
			Contract: contract,
			Reason:   fmt.Sprintf("implementation %T does not satisfy the contract", target),
		}
	}

	methods := contracts.MethodsOf(contract)
	iv := reflect.ValueOf(impl)
	bound := make(map[string]reflect.Value, len(methods))
	for name := range methods {
		bound[name] = iv.MethodByName(name)
	}

	p := &Proxy[T]{
		target:   impl,
		contract: contract,
		implType: reflect.TypeOf(target),
		methods:  methods,
		bound:    bound,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Unwrap returns the backing implementation
func (p *Proxy[T]) Unwrap() T {
	return p.target
}

// Contract returns the contract interface type
func (p *Proxy[T]) Contract() reflect.Type {
	return p.contract
}

// Call invokes a contract method by name through the interception
// pipeline and returns the method's non-error results. If the method's
// first parameter is a context.Context and the caller supplied one fewer
// argument, the call context is prepended.
//
// When no interceptors apply, the implementation is called directly with
// no invocation or chain allocation. Otherwise the collected interceptors
// are instantiated, injected from the provider, and executed around the
// terminal call; errors from any link or from the method itself propagate
// unchanged.
func (p *Proxy[T]) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	m, ok := p.methods[method]
	if !ok {
		return nil, &contracts.MethodNotFoundError{Contract: p.contract, Method: method}
	}

	var bindings []interceptors.Binding
	if p.registry != nil {
		bindings = p.registry.Collect(m, p.implType)
	}
	if len(bindings) == 0 {
		return p.invoke(ctx, m, args)
	}

	chain, err := interceptors.Build(bindings, interceptors.NewInjector(p.provider))
	if err != nil {
		return nil, err
	}

	inv := contracts.NewInvocation(m, args)
	p.logger.Debug("executing interceptor chain",
		"invocationId", inv.ID,
		"method", m.Name,
		"links", chain.Len(),
	)

	terminal := interceptors.HandlerFunc(func(ctx context.Context, inv *contracts.Invocation) error {
		results, err := p.invoke(ctx, inv.Method, inv.Args())
		if err != nil {
			return err
		}
		inv.SetResults(results...)
		return nil
	})

	if err := chain.Execute(ctx, inv, terminal); err != nil {
		return nil, err
	}
	return inv.Results(), nil
}

// invoke performs the late-bound call into the implementation.
func (p *Proxy[T]) invoke(ctx context.Context, m contracts.Method, args []any) ([]any, error) {
	fn := p.bound[m.Name]

	if m.TakesContext() && len(args) == m.Type.NumIn()-1 {
		withCtx := make([]any, 0, len(args)+1)
		withCtx = append(withCtx, ctx)
		args = append(withCtx, args...)
	}

	if err := checkArity(m, args); err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramType := paramTypeAt(m, i)
		if arg == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("argument %d for %s.%s: %s is not assignable to %s",
				i, m.Contract, m.Name, v.Type(), paramType)
		}
		in[i] = v
	}

	out := fn.Call(in)

	if m.ReturnsError() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return valuesOf(out), last.Interface().(error)
		}
	}
	return valuesOf(out), nil
}

func checkArity(m contracts.Method, args []any) error {
	numIn := m.Type.NumIn()
	if m.Type.IsVariadic() {
		if len(args) < numIn-1 {
			return &contracts.ArgumentError{Method: m.Name, Expected: numIn - 1, Got: len(args)}
		}
		return nil
	}
	if len(args) != numIn {
		return &contracts.ArgumentError{Method: m.Name, Expected: numIn, Got: len(args)}
	}
	return nil
}

func paramTypeAt(m contracts.Method, i int) reflect.Type {
	numIn := m.Type.NumIn()
	if m.Type.IsVariadic() && i >= numIn-1 {
		return m.Type.In(numIn - 1).Elem()
	}
	return m.Type.In(i)
}

func valuesOf(out []reflect.Value) []any {
	if len(out) == 0 {
		return nil
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results
}

// First converts the first result of a Call to R. It is a convenience for
// single-result contract methods.
func First[R any](results []any, err error) (R, error) {
	var zero R
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, nil
	}
	r, ok := results[0].(R)
	if !ok {
		return zero, fmt.Errorf("result type %T is not %T", results[0], zero)
	}
	return r, nil
}
