// Package cache defines the cache port used by the auth service.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэша со строковыми значениями.
// Отсутствующий ключ возвращается как пустая строка без ошибки.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Close() error
}
