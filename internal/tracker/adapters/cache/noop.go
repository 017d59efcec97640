package cache

import (
	"context"
	"time"

	"exercisetracker/internal/tracker/ports/cache"
)

var _ cache.Cache = NoopCache{}

// NoopCache используется, когда Redis отключен: ничего не хранит и всегда промахивается.
type NoopCache struct{}

// Get всегда сообщает о промахе.
func (NoopCache) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

// Set ничего не делает.
func (NoopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

// Delete ничего не делает.
func (NoopCache) Delete(context.Context, string) error {
	return nil
}

// Close ничего не делает.
func (NoopCache) Close() error {
	return nil
}
