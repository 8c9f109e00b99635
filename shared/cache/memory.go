package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotel/infras/otel"
	"hotel/shared/constant"
)

type entry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	otel    otel.Otel
	now     func() time.Time
}

// NewMemoryCache keeps values in process. Clear supports trailing-wildcard patterns only.
func NewMemoryCache(ot otel.Otel) Cache {
	return &memoryCache{
		entries: map[string]entry{},
		otel:    ot,
		now:     time.Now,
	}
}

func (cache *memoryCache) Save(ctx context.Context, key string, value any, duration int) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if duration <= 0 {
		return nil
	}

	strValue, err := encode(key, value)
	if err != nil {
		return err
	}

	item := entry{value: string(strValue), expiresAt: cache.now().Add(time.Second * time.Duration(duration))}

	cache.mu.Lock()
	cache.entries[key] = item
	cache.mu.Unlock()

	return nil
}

func (cache *memoryCache) Get(ctx context.Context, key string, value any) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cache.mu.RLock()
	item, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok || cache.now().After(item.expiresAt) {
		return fmt.Errorf("failed to get cache value: %w", Nil)
	}

	return decode(item.value, value)
}

func (cache *memoryCache) Delete(ctx context.Context, key string) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()

	cache.mu.Lock()
	delete(cache.entries, key)
	cache.mu.Unlock()

	return nil
}

func (cache *memoryCache) Clear(ctx context.Context, pattern string) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	prefix, wildcard := strings.CutSuffix(pattern, constant.Asterix)

	cache.mu.Lock()
	defer cache.mu.Unlock()

	for key := range cache.entries {
		if key == pattern || (wildcard && strings.HasPrefix(key, prefix)) {
			delete(cache.entries, key)
		}
	}

	return nil
}
