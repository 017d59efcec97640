package cache

import (
	"context"
	"fmt"
	"time"

	"exercisetracker/internal/tracker/ports/cache"
	"exercisetracker/internal/tracker/resilience"
)

var _ cache.Cache = (*BreakerCache)(nil)

// BreakerCache пропускает обращения к кэшу через Circuit Breaker,
// чтобы недоступный Redis не замедлял каждый запрос.
type BreakerCache struct {
	inner   cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewBreakerCache оборачивает кэш в Circuit Breaker.
func NewBreakerCache(inner cache.Cache, breaker *resilience.CircuitBreaker) *BreakerCache {
	return &BreakerCache{inner: inner, breaker: breaker}
}

// Get получает значение, если Circuit Breaker закрыт.
func (c *BreakerCache) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := c.breaker.Execute(ctx, func() error {
		var err error
		value, found, err = c.inner.Get(ctx, key)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("guarded get: %w", err)
	}
	return value, found, nil
}

// Set сохраняет значение, если Circuit Breaker закрыт.
func (c *BreakerCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.breaker.Execute(ctx, func() error {
		return c.inner.Set(ctx, key, value, ttl)
	}); err != nil {
		return fmt.Errorf("guarded set: %w", err)
	}
	return nil
}

// Delete удаляет значение, если Circuit Breaker закрыт.
func (c *BreakerCache) Delete(ctx context.Context, key string) error {
	if err := c.breaker.Execute(ctx, func() error {
		return c.inner.Delete(ctx, key)
	}); err != nil {
		return fmt.Errorf("guarded delete: %w", err)
	}
	return nil
}

// Close закрывает вложенный кэш в обход Circuit Breaker.
func (c *BreakerCache) Close() error {
	return c.inner.Close()
}
