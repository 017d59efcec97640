package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// ErrMsgInternal - тело ответа 500 для паник и непредвиденных ошибок обработчиков.
const ErrMsgInternal = "Internal Server Error"

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrMsgInternal,
				})
			}
		}()

		return ctx.Next()
	}
}
