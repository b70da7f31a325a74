package logger

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerKey - ключ контекста для точечного переопределения логгера.
type loggerKey struct{}

// global хранит логгер процесса, установленный через SetGlobalLogger.
var global atomic.Pointer[Logger]

// reserve действует до настройки логгера процесса и пишет только
// предупреждения и ошибки.
var reserve = newReserveLogger()

func newReserveLogger() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := cfg.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{l: zapLogger}
}

// NewContext возвращает контекст с собственным логгером.
func NewContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// SetGlobalLogger назначает логгер процесса. Nil игнорируется.
func SetGlobalLogger(log *Logger) {
	if log != nil {
		global.Store(log)
	}
}

// Log возвращает логгер из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*Logger); ok {
			return log
		}
	}
	if log := global.Load(); log != nil {
		return log
	}
	return reserve
}
