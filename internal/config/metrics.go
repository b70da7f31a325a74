package config

import "fmt"

// MetricsConfig содержит настройки экспорта метрик Prometheus.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTEHIVE_METRICS_ENABLED" env-default:"true"`
	Host    string `yaml:"host" env:"NOTEHIVE_METRICS_HOST" env-default:"0.0.0.0"`
	Port    int    `yaml:"port" env:"NOTEHIVE_METRICS_PORT" env-default:"9091"`
}

// GetAddress возвращает адрес для прослушивания сервером метрик.
func (m *MetricsConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}
