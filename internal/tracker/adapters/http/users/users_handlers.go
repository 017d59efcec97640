// Package users содержит HTTP-обработчики пользователей и их журналов.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/internal/tracker/app/dto"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/api"
	"exercisetracker/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateUser  = "handling create user request"
	LogHandlerListUsers   = "handling list users request"
	LogHandlerAddExercise = "handling add exercise request"
	LogHandlerGetLogs     = "handling get logs request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUserNotFound       = "User not found"
)

// Handler обработчик HTTP-запросов для работы с пользователями и журналами.
type Handler struct {
	tracker api.TrackerUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(tracker api.TrackerUseCase) *Handler {
	return &Handler{
		tracker: tracker,
	}
}

// CreateUser обрабатывает POST /api/users.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	body, err := parseBody(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.tracker.CreateUser(requestCtx, &dto.CreateUserRequest{Username: body["username"]})
	if err != nil {
		return handleError(requestCtx, ctx, log, err)
	}

	return sendJSON(ctx, user)
}

// ListUsers обрабатывает GET /api/users.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	users, err := h.tracker.ListUsers(requestCtx)
	if err != nil {
		return handleError(requestCtx, ctx, log, err)
	}

	return sendJSON(ctx, users)
}

// AddExercise обрабатывает POST /api/users/:id/exercises.
func (h *Handler) AddExercise(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID := ctx.Params("id")
	log := logger.Log(requestCtx).With(
		zap.String("handler", "Handler.AddExercise"),
		zap.String("user_id", userID))
	log.Debug(requestCtx, LogHandlerAddExercise)

	body, err := parseBody(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	exercise, err := h.tracker.AddExercise(requestCtx, userID, &dto.AddExerciseRequest{
		Description: body["description"],
		Duration:    body["duration"],
		Date:        body["date"],
	})
	if err != nil {
		return handleError(requestCtx, ctx, log, err)
	}

	return sendJSON(ctx, exercise)
}

// GetLogs обрабатывает GET /api/users/:id/logs.
func (h *Handler) GetLogs(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID := ctx.Params("id")
	log := logger.Log(requestCtx).With(
		zap.String("handler", "Handler.GetLogs"),
		zap.String("user_id", userID))
	log.Debug(requestCtx, LogHandlerGetLogs)

	logs, err := h.tracker.GetLogs(requestCtx, userID, &dto.LogsQuery{
		From:  ctx.Query("from"),
		To:    ctx.Query("to"),
		Limit: ctx.Query("limit"),
	})
	if err != nil {
		return handleError(requestCtx, ctx, log, err)
	}

	return sendJSON(ctx, logs)
}

// handleError сопоставляет ошибки домена с HTTP статусами.
func handleError(requestCtx context.Context, ctx fiber.Ctx, log *logger.Logger, err error) error {
	var validationErr *entities.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Debug(requestCtx, validationErr.Message)
		return sendError(ctx, fiber.StatusBadRequest, validationErr.Message)
	case errors.Is(err, entities.ErrUserNotFound):
		log.Debug(requestCtx, ErrMsgUserNotFound)
		return sendError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	default:
		log.Error(requestCtx, middleware.ErrMsgInternal, zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, middleware.ErrMsgInternal)
	}
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, body any) error {
	if err := ctx.Status(fiber.StatusOK).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
