package logger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrLoggerNotFound возвращается, если в контексте нет логгера.
var ErrLoggerNotFound = errors.New("logger not found in context")

type loggerKey struct{}

var (
	global   atomic.Pointer[Logger]
	fallback = newFallback()
)

// newFallback используется, пока глобальный логгер не задан: только предупреждения и выше.
func newFallback() *Logger {
	l, err := NewLogger(Production, "warn")
	if err != nil {
		return NewFromZap(zap.NewNop())
	}
	return l.With(zap.String("logger", "fallback"))
}

// NewContext возвращает контекст, к которому привязан логгер l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext возвращает логгер, привязанный к контексту.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok || l == nil {
		return nil, ErrLoggerNotFound
	}
	return l, nil
}

// SetGlobalLogger заменяет глобальный логгер; nil возвращает резервный.
func SetGlobalLogger(l *Logger) {
	global.Store(l)
}

// Log возвращает логгер из контекста, иначе глобальный, иначе резервный. Никогда не nil.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}
	if l := global.Load(); l != nil {
		return l
	}
	return fallback
}
