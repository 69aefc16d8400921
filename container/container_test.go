package container

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

type service interface {
	ID() int
}

type numberedService struct {
	id int
}

func (s *numberedService) ID() int { return s.id }

func TestRegisterAndResolve(t *testing.T) {
	t.Run("resolves a registered type", func(t *testing.T) {
		c := New()
		Register(c, ScopeTransient, func(*Container) (*counter, error) {
			return &counter{n: 1}, nil
		})

		got, err := Resolve[*counter](c)

		require.NoError(t, err)
		assert.Equal(t, 1, got.n)
	})

	t.Run("interface registrations resolve to the bound implementation", func(t *testing.T) {
		c := New()
		Register(c, ScopeSingleton, func(*Container) (service, error) {
			return &numberedService{id: 7}, nil
		})

		got, err := Resolve[service](c)

		require.NoError(t, err)
		assert.Equal(t, 7, got.ID())
	})

	t.Run("unregistered types fail loudly", func(t *testing.T) {
		c := New()

		_, err := Resolve[*counter](c)

		var notFound *BindingNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("factory failures are wrapped", func(t *testing.T) {
		c := New()
		boom := errors.New("no database")
		Register(c, ScopeTransient, func(*Container) (*counter, error) {
			return nil, boom
		})

		_, err := Resolve[*counter](c)

		var factoryErr *FactoryError
		require.ErrorAs(t, err, &factoryErr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("replacing a registration is observed by later resolutions", func(t *testing.T) {
		c := New()
		RegisterInstance[service](c, &numberedService{id: 1})

		first, err := Resolve[service](c)
		require.NoError(t, err)

		RegisterInstance[service](c, &numberedService{id: 2})
		second, err := Resolve[service](c)
		require.NoError(t, err)

		assert.Equal(t, 1, first.ID())
		assert.Equal(t, 2, second.ID())
	})

	t.Run("replacing a registration invalidates caches in live sibling scopes", func(t *testing.T) {
		c := New()
		Register(c, ScopeScoped, func(*Container) (service, error) {
			return &numberedService{id: 1}, nil
		})

		scopeA := c.Scoped()
		scopeB := c.Scoped()
		a, err := Resolve[service](scopeA)
		require.NoError(t, err)
		b, err := Resolve[service](scopeB)
		require.NoError(t, err)
		assert.Equal(t, 1, a.ID())
		assert.Equal(t, 1, b.ID())

		// Replace through the root; both scopes had cached instances.
		Register(c, ScopeScoped, func(*Container) (service, error) {
			return &numberedService{id: 2}, nil
		})

		a2, err := Resolve[service](scopeA)
		require.NoError(t, err)
		b2, err := Resolve[service](scopeB)
		require.NoError(t, err)
		assert.Equal(t, 2, a2.ID())
		assert.Equal(t, 2, b2.ID())
	})

	t.Run("replacing a singleton registration rebuilds the shared instance", func(t *testing.T) {
		c := New()
		Register(c, ScopeSingleton, func(*Container) (service, error) {
			return &numberedService{id: 1}, nil
		})
		scope := c.Scoped()

		first, err := Resolve[service](scope)
		require.NoError(t, err)

		Register(c, ScopeSingleton, func(*Container) (service, error) {
			return &numberedService{id: 2}, nil
		})
		second, err := Resolve[service](scope)
		require.NoError(t, err)

		assert.Equal(t, 1, first.ID())
		assert.Equal(t, 2, second.ID())
	})
}

func TestLifetimes(t *testing.T) {
	t.Run("singletons share one instance across scopes", func(t *testing.T) {
		c := New()
		builds := 0
		Register(c, ScopeSingleton, func(*Container) (*counter, error) {
			builds++
			return &counter{}, nil
		})

		root, err := Resolve[*counter](c)
		require.NoError(t, err)
		scoped, err := Resolve[*counter](c.Scoped())
		require.NoError(t, err)

		assert.Same(t, root, scoped)
		assert.Equal(t, 1, builds)
	})

	t.Run("scoped instances are cached per scope", func(t *testing.T) {
		c := New()
		builds := 0
		Register(c, ScopeScoped, func(*Container) (*counter, error) {
			builds++
			return &counter{}, nil
		})

		scopeA := c.Scoped()
		scopeB := c.Scoped()

		a1, err := Resolve[*counter](scopeA)
		require.NoError(t, err)
		a2, err := Resolve[*counter](scopeA)
		require.NoError(t, err)
		b, err := Resolve[*counter](scopeB)
		require.NoError(t, err)

		assert.Same(t, a1, a2)
		assert.NotSame(t, a1, b)
		assert.Equal(t, 2, builds)
	})

	t.Run("transients build fresh on every resolution", func(t *testing.T) {
		c := New()
		Register(c, ScopeTransient, func(*Container) (*counter, error) {
			return &counter{}, nil
		})

		first, err := Resolve[*counter](c)
		require.NoError(t, err)
		second, err := Resolve[*counter](c)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
	})
}

func TestResolveRequired(t *testing.T) {
	t.Run("resolves by reflect type", func(t *testing.T) {
		c := New()
		RegisterInstance[service](c, &numberedService{id: 3})

		got, err := c.ResolveRequired(reflect.TypeOf((*service)(nil)).Elem())

		require.NoError(t, err)
		assert.Equal(t, 3, got.(service).ID())
	})

	t.Run("factories resolve through the requesting scope", func(t *testing.T) {
		c := New()
		Register(c, ScopeScoped, func(*Container) (*counter, error) {
			return &counter{n: 10}, nil
		})
		Register(c, ScopeTransient, func(cc *Container) (service, error) {
			dep, err := Resolve[*counter](cc)
			if err != nil {
				return nil, err
			}
			return &numberedService{id: dep.n}, nil
		})

		got, err := Resolve[service](c.Scoped())

		require.NoError(t, err)
		assert.Equal(t, 10, got.ID())
	})
}

func TestConcurrentResolution(t *testing.T) {
	t.Run("concurrent singleton resolution yields one instance", func(t *testing.T) {
		c := New()
		Register(c, ScopeSingleton, func(*Container) (*counter, error) {
			return &counter{}, nil
		})

		const goroutines = 32
		results := make([]*counter, goroutines)
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				got, err := Resolve[*counter](c)
				assert.NoError(t, err)
				results[i] = got
			}(i)
		}
		wg.Wait()

		for i := 1; i < goroutines; i++ {
			assert.Same(t, results[0], results[i])
		}
	})
}
