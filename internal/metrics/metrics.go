// Package metrics экспортирует метрики Prometheus сервиса заметок.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"notehive/pkg/logger"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notehive_http_requests_total",
		Help: "Number of HTTP requests grouped by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notehive_http_request_duration_seconds",
		Help:    "HTTP request latency grouped by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	notesOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notehive_notes_operations_total",
		Help: "Number of note operations grouped by operation and status.",
	}, []string{"operation", "status"})
)

// ObserveRequest фиксирует завершенный HTTP запрос.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncNoteOperation увеличивает счетчик операций с заметками.
func IncNoteOperation(operation, status string) {
	notesOperations.WithLabelValues(operation, status).Inc()
}

// Server обслуживает endpoint /metrics на отдельном адресе.
type Server struct {
	srv *http.Server
}

// NewServer создает сервер метрик.
// Endpoint отдается через net/http, так как promhttp работает с http.Handler.
func NewServer(address string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start запускает сервер метрик в отдельной горутине.
func (s *Server) Start(ctx context.Context) {
	log := logger.Log(ctx)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server stopped", zap.Error(err))
		}
	}()
}

// Stop останавливает сервер метрик.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
