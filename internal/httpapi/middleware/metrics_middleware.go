package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"notehive/internal/metrics"
)

// NewMetricsMiddleware создает промежуточное ПО для сбора метрик HTTP запросов.
// В качестве route используется шаблон маршрута, а не фактический путь,
// чтобы не раздувать кардинальность меток.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		route := ctx.Route().Path
		metrics.ObserveRequest(ctx.Method(), route, ctx.Response().StatusCode(), time.Since(start))

		return err
	}
}
