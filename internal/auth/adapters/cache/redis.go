// Package cache содержит реализацию кэширования с использованием Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notehive/internal/auth/ports/cache"
	redisdb "notehive/pkg/db/redis"
	"notehive/pkg/logger"
)

// Константы для логирования.
const (
	ErrorFailedToGet    = "failed to get value from cache"
	ErrorFailedToSet    = "failed to set value in cache"
	ErrorFailedToDelete = "failed to delete value from cache"
)

// RedisCache реализует интерфейс cache.Cache поверх общего клиента Redis.
type RedisCache struct {
	client     *redisdb.Client
	defaultTTL time.Duration
}

// NewRedisCache создает новый экземпляр RedisCache.
func NewRedisCache(ctx context.Context, cfg *redisdb.Config, defaultTTL time.Duration) (cache.Cache, error) {
	client, err := redisdb.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis cache: %w", err)
	}

	return &RedisCache{client: client, defaultTTL: defaultTTL}, nil
}

// NewRedisCacheWithClient оборачивает существующий клиент Redis.
func NewRedisCacheWithClient(client *redisdb.Client, defaultTTL time.Duration) cache.Cache {
	return &RedisCache{client: client, defaultTTL: defaultTTL}
}

// Get получает значение по ключу. Отсутствующий ключ - пустая строка без ошибки.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Get"), zap.String("key", key))

	value, err := c.client.Get(ctx, key)
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, nil
}

// Set устанавливает значение для ключа с временем жизни.
// Нулевой TTL заменяется значением по умолчанию.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Set"), zap.String("key", key))

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет ключи.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Delete"))

	if err := c.client.Delete(ctx, keys...); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis cache: %w", err)
	}
	return nil
}
