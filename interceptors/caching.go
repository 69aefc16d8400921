package interceptors

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/glimte/aspect-go/contracts"
)

// Cache stores invocation results keyed by method and arguments
type Cache interface {
	Get(key string) ([]any, bool)
	Set(key string, results []any)
}

// MemoryCache is a concurrency-safe in-memory Cache
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]any
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]any)}
}

// Get implements Cache
func (c *MemoryCache) Get(key string) ([]any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	results, ok := c.entries[key]
	return results, ok
}

// Set implements Cache
func (c *MemoryCache) Set(key string, results []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = results
}

// CachingInterceptor serves repeated calls from a cache. A hit
// short-circuits the rest of the chain by writing the cached results into
// the invocation; a miss delegates and caches the successful outcome.
// Only methods whose arguments render to a stable key should be cached.
type CachingInterceptor struct {
	cache Cache
}

// NewCachingInterceptor creates a new caching interceptor
func NewCachingInterceptor(cache Cache) *CachingInterceptor {
	return &CachingInterceptor{cache: cache}
}

// Intercept implements Interceptor
func (i *CachingInterceptor) Intercept(ctx context.Context, inv *contracts.Invocation, next Handler) error {
	key := cacheKey(inv)

	// Copy in both directions so callers and later hits never share a
	// result slice with the cache.
	if results, ok := i.cache.Get(key); ok {
		inv.SetResults(copyResults(results)...)
		return nil
	}

	if err := next.Handle(ctx, inv); err != nil {
		return err
	}

	i.cache.Set(key, copyResults(inv.Results()))
	return nil
}

func copyResults(results []any) []any {
	if results == nil {
		return nil
	}
	return append([]any(nil), results...)
}

// Name implements Interceptor
func (i *CachingInterceptor) Name() string {
	return "CachingInterceptor"
}

func cacheKey(inv *contracts.Invocation) string {
	var b strings.Builder
	b.WriteString(inv.Method.Contract.String())
	b.WriteByte('.')
	b.WriteString(inv.Method.Name)
	for _, arg := range inv.Args() {
		fmt.Fprintf(&b, "|%v", arg)
	}
	return b.String()
}
