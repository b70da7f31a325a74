package config

import (
	"time"

	redisdb "notehive/pkg/db/redis"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host       string `yaml:"host" env:"NOTEHIVE_REDIS_HOST" env-default:"redis"`
	Port       int    `yaml:"port" env:"NOTEHIVE_REDIS_PORT" env-default:"6379"`
	Password   string `yaml:"password" env:"NOTEHIVE_REDIS_PASSWORD" env-default:""`
	DB         int    `yaml:"db" env:"NOTEHIVE_REDIS_DB" env-default:"0"`
	PoolSize   int    `yaml:"pool_size" env:"NOTEHIVE_REDIS_POOL_SIZE" env-default:"10"`
	TimeoutSec int    `yaml:"timeout" env:"NOTEHIVE_REDIS_TIMEOUT" env-default:"5"`
	CacheTTL   int    `yaml:"cache_ttl" env:"NOTEHIVE_REDIS_CACHE_TTL" env-default:"300"`
}

// ToClientConfig преобразует настройки в конфигурацию клиента Redis.
func (r *RedisConfig) ToClientConfig() *redisdb.Config {
	return &redisdb.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  time.Duration(r.TimeoutSec) * time.Second,
	}
}

// GetCacheTTL возвращает время жизни записей кэша.
func (r *RedisConfig) GetCacheTTL() time.Duration {
	return time.Duration(r.CacheTTL) * time.Second
}
