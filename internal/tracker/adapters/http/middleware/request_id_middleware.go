// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"exercisetracker/pkg/logger"
)

// requestContextKey - ключ Locals, под которым хранится контекст запроса.
const requestContextKey = "requestContext"

// NewRequestIDMiddleware создает промежуточное ПО, которое кладет идентификатор запроса в контекст
// и возвращает его в заголовке ответа. Идентификатор берется из X-Request-ID или генерируется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.HeaderRequestID))

		id, _ := logger.GetRequestID(requestCtx)
		ctx.Set(logger.HeaderRequestID, id)
		setRequestContext(ctx, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором; без middleware - контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(requestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

func setRequestContext(ctx fiber.Ctx, requestCtx context.Context) context.Context {
	ctx.Locals(requestContextKey, requestCtx)
	return requestCtx
}
