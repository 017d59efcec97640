package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Логгер с полями запроса привязывается к контексту запроса и доступен обработчикам через logger.Log.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		log := logger.Log(RequestContext(ctx)).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)
		requestCtx := setRequestContext(ctx, logger.NewContext(RequestContext(ctx), log))

		log.Debug(requestCtx, "Request started")

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
