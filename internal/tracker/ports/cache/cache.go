// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс для работы с кэшем.
// Get возвращает пустую строку и false, если ключ отсутствует.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
