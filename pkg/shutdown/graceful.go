// Package shutdown ожидает сигналы завершения процесса и останавливает
// зависимости сервиса в заданном порядке.
package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notehive/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived  = "shutdown signal received"
	LogTimeoutExceeded = "shutdown timeout exceeded, remaining hooks skipped"
	LogHookFailed      = "shutdown hook failed"
)

// Wait блокирует выполнение до получения SIGINT или SIGTERM, затем
// последовательно выполняет хуки в порядке передачи. На все хуки
// отводится общий timeout, по его истечении оставшиеся пропускаются.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-sigCtx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, LogSignalReceived)

	for i, hook := range hooks {
		if ctx.Err() != nil {
			log.Warn(ctx, LogTimeoutExceeded, zap.Int("skipped", len(hooks)-i))
			return
		}
		if err := hook(ctx); err != nil {
			log.Error(ctx, LogHookFailed, zap.Int("hook", i), zap.Error(err))
		}
	}
}
