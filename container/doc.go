// Package container provides the dependency provider the interception
// core resolves against: type-keyed registrations with singleton, scoped,
// and transient lifetimes.
//
// The core consumes exactly one method of this package, ResolveRequired,
// which fails loudly when nothing is registered for a type. Everything
// else is registration surface for applications wiring up proxies and
// interceptor dependencies.
//
//	c := container.New()
//	container.Register[Clock](c, container.ScopeSingleton, func(*container.Container) (Clock, error) {
//		return systemClock{}, nil
//	})
//
//	scope := c.Scoped()
//	clock, err := container.Resolve[Clock](scope)
//
// Registrations may be replaced at any time; later resolutions observe
// the replacement, which is what keeps per-call interceptor injection
// current.
package container
