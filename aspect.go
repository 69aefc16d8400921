// Package aspect wraps concrete service implementations behind proxies
// that run ordered interceptors around every contract method call.
//
// The facade ties the functional packages together:
//   - contracts: method descriptors, invocations, error taxonomy
//   - interceptors: attachment registry, chain execution, built-ins
//   - proxy: the runtime stand-in and its dispatch table
//   - container: lifetimes and resolve-by-type for injected dependencies
//
// Typical wiring:
//
//	reg := interceptors.NewRegistry()
//	reg.AttachToContractMethod(contract, "Say",
//		interceptors.UseOrdered(10, func() interceptors.Interceptor {
//			return interceptors.NewLoggingInterceptor(nil)
//		}),
//	)
//
//	c := container.New()
//	err := aspect.RegisterAspect[Greeter](c, container.ScopeSingleton, reg,
//		func(*container.Container) (Greeter, error) { return &EnglishGreeter{}, nil })
//
//	p, err := aspect.ResolveProxy[Greeter](c)
//	greeting, err := proxy.First[string](p.Call(ctx, "Say", "Ann"))
package aspect

import (
	"github.com/glimte/aspect-go/container"
	"github.com/glimte/aspect-go/contracts"
	"github.com/glimte/aspect-go/interceptors"
	"github.com/glimte/aspect-go/proxy"
)

// Wrap builds a proxy for the contract T over target. It is idempotent:
// wrapping an existing proxy of the same type returns it unchanged.
func Wrap[T any](target any, opts ...proxy.Option[T]) (*proxy.Proxy[T], error) {
	return proxy.New[T](target, opts...)
}

// RegisterAspect registers a proxy-producing factory for the contract T
// under the requested lifetime. The contract is validated eagerly: a
// non-interface T fails here, never at resolution or call time. The
// container doubles as the proxy's dependency provider, so interceptor
// injection resolves against the same scope the proxy was resolved from.
func RegisterAspect[T any](c *container.Container, scope container.Scope, registry *interceptors.Registry, implFactory func(*container.Container) (T, error)) error {
	if _, err := contracts.ContractOf[T](); err != nil {
		return err
	}

	container.Register(c, scope, func(cc *container.Container) (*proxy.Proxy[T], error) {
		impl, err := implFactory(cc)
		if err != nil {
			return nil, err
		}
		return proxy.New[T](impl,
			proxy.WithRegistry[T](registry),
			proxy.WithProvider[T](cc),
		)
	})
	return nil
}

// ResolveProxy resolves the registered proxy for the contract T.
func ResolveProxy[T any](c *container.Container) (*proxy.Proxy[T], error) {
	return container.Resolve[*proxy.Proxy[T]](c)
}
