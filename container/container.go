package container

import (
	"reflect"
	"sync"
)

// Scope determines how long a resolved instance lives.
type Scope string

const (
	// ScopeSingleton shares one instance across the whole container tree.
	ScopeSingleton Scope = "singleton"

	// ScopeScoped shares one instance per Scoped() child container.
	ScopeScoped Scope = "scoped"

	// ScopeTransient builds a fresh instance on every resolution.
	ScopeTransient Scope = "transient"
)

// Factory builds one instance of a registered type. It receives the
// container the resolution came through, so factories can resolve their
// own dependencies with the caller's scope.
type Factory func(c *Container) (any, error)

type binding struct {
	scope   Scope
	factory Factory
}

// cacheEntry remembers which binding produced a cached instance, so a
// replaced registration invalidates stale instances in every live scope.
type cacheEntry struct {
	instance any
	binding  *binding
}

type registrations struct {
	mu       sync.RWMutex
	bindings map[reflect.Type]*binding
}

// Container resolves type-keyed registrations. The zero value is not
// usable; create containers with New and child scopes with Scoped.
// Registration always targets the root, so every scope sees the same
// bindings; instance caches are what differ per scope.
type Container struct {
	shared *registrations
	root   *Container

	mu         sync.Mutex
	singletons map[reflect.Type]cacheEntry
	scoped     map[reflect.Type]cacheEntry
}

// New creates an empty root container
func New() *Container {
	c := &Container{
		shared:     &registrations{bindings: make(map[reflect.Type]*binding)},
		singletons: make(map[reflect.Type]cacheEntry),
		scoped:     make(map[reflect.Type]cacheEntry),
	}
	c.root = c
	return c
}

// Scoped creates a child container with its own scoped-instance cache.
// Singletons remain shared with the root; registrations are shared with
// the whole tree.
func (c *Container) Scoped() *Container {
	return &Container{
		shared: c.shared,
		root:   c.root,
		scoped: make(map[reflect.Type]cacheEntry),
	}
}

// RegisterType registers (or replaces) the factory for t. Later
// resolutions observe the replacement in every live scope; cached
// instances from the previous registration are rebuilt on next use.
func (c *Container) RegisterType(t reflect.Type, scope Scope, factory Factory) {
	c.shared.mu.Lock()
	c.shared.bindings[t] = &binding{scope: scope, factory: factory}
	c.shared.mu.Unlock()
}

// ResolveRequired returns the instance registered for t, building it per
// the binding's lifetime. It returns *BindingNotFoundError when nothing
// is registered. This is the single method the interception core consumes.
func (c *Container) ResolveRequired(t reflect.Type) (any, error) {
	c.shared.mu.RLock()
	b, ok := c.shared.bindings[t]
	c.shared.mu.RUnlock()
	if !ok {
		return nil, &BindingNotFoundError{Type: t}
	}

	switch b.scope {
	case ScopeSingleton:
		return c.root.cached(c.root.singletonCache, t, b)
	case ScopeScoped:
		return c.cached(c.scopedCache, t, b)
	default:
		return c.build(t, b)
	}
}

func (c *Container) singletonCache() map[reflect.Type]cacheEntry { return c.singletons }
func (c *Container) scopedCache() map[reflect.Type]cacheEntry    { return c.scoped }

func (c *Container) cached(cache func() map[reflect.Type]cacheEntry, t reflect.Type, b *binding) (any, error) {
	c.mu.Lock()
	if entry, ok := cache()[t]; ok && entry.binding == b {
		c.mu.Unlock()
		return entry.instance, nil
	}
	c.mu.Unlock()

	// Build outside the lock; factories may resolve further dependencies.
	instance, err := c.build(t, b)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := cache()[t]; ok && entry.binding == b {
		return entry.instance, nil
	}
	cache()[t] = cacheEntry{instance: instance, binding: b}
	return instance, nil
}

func (c *Container) build(t reflect.Type, b *binding) (any, error) {
	instance, err := b.factory(c)
	if err != nil {
		return nil, &FactoryError{Type: t, Err: err}
	}
	if instance != nil && !reflect.TypeOf(instance).AssignableTo(t) {
		return nil, &TypeMismatchError{Expected: t, Got: reflect.TypeOf(instance)}
	}
	return instance, nil
}

// Register registers (or replaces) a typed factory for T.
func Register[T any](c *Container, scope Scope, factory func(*Container) (T, error)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.RegisterType(t, scope, func(c *Container) (any, error) {
		return factory(c)
	})
}

// RegisterInstance registers an existing instance as a singleton for T.
func RegisterInstance[T any](c *Container, instance T) {
	Register(c, ScopeSingleton, func(*Container) (T, error) {
		return instance, nil
	})
}

// Resolve resolves T through the container.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	instance, err := c.ResolveRequired(t)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: t, Got: reflect.TypeOf(instance)}
	}
	return typed, nil
}
