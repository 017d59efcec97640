// Package app содержит сценарии использования трекера упражнений.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/app/dto"
	"exercisetracker/internal/tracker/domain/calendar"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/domain/numeric"
	"exercisetracker/internal/tracker/ports/api"
	"exercisetracker/internal/tracker/ports/cache"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

const (
	methodCreateUser  = "CreateUser"
	methodListUsers   = "ListUsers"
	methodAddExercise = "AddExercise"
	methodGetLogs     = "GetLogs"

	msgUserCreated     = "user created"
	msgUsersListed     = "users listed"
	msgExerciseAdded   = "exercise added"
	msgLogsServed      = "logs served"
	msgLogsCacheHit    = "logs served from cache"
	msgValidationError = "request validation failed"
	msgCacheReadError  = "logs cache read failed"
	msgCacheWriteError = "logs cache write failed"
	msgCacheDecodeErr  = "logs cache entry is corrupted"
	msgCacheEvictError = "logs cache eviction failed"

	errCtxValidatingUser     = "validating user"
	errCtxValidatingExercise = "validating exercise"
	errCtxCreatingUser       = "creating user"
	errCtxListingUsers       = "listing users"
	errCtxFindingUser        = "finding user"
	errCtxAppendingExercise  = "appending exercise"

	logsCachePrefix = "tracker:logs:"
)

// TrackerUseCaseImpl реализует интерфейс TrackerUseCase.
type TrackerUseCaseImpl struct {
	users    repositories.UserRepository
	cache    cache.Cache
	calendar *calendar.Calendar
	now      func() time.Time
	cacheTTL time.Duration
}

// Option настраивает TrackerUseCaseImpl.
type Option func(*TrackerUseCaseImpl)

// WithClock задает источник текущего времени для дат по умолчанию.
func WithClock(now func() time.Time) Option {
	return func(u *TrackerUseCaseImpl) {
		u.now = now
	}
}

// WithCacheTTL задает время жизни кэшированных журналов; 0 - значение кэша по умолчанию.
func WithCacheTTL(ttl time.Duration) Option {
	return func(u *TrackerUseCaseImpl) {
		u.cacheTTL = ttl
	}
}

// NewTrackerUseCase создает новый экземпляр сценариев трекера.
func NewTrackerUseCase(
	users repositories.UserRepository,
	logsCache cache.Cache,
	cal *calendar.Calendar,
	opts ...Option,
) api.TrackerUseCase {
	u := &TrackerUseCaseImpl{
		users:    users,
		cache:    logsCache,
		calendar: cal,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateUser регистрирует пользователя.
func (u *TrackerUseCaseImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	if !req.Username.Present {
		log.Debug(ctx, msgValidationError)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, entities.ErrUsernameRequired)
	}

	user, err := u.users.Create(ctx, req.Username.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("user_id", user.ID))
	return &dto.UserResponse{ID: user.ID, Username: user.Username}, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (u *TrackerUseCaseImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	result := make([]dto.UserResponse, len(users))
	for i, user := range users {
		result[i] = dto.UserResponse{ID: user.ID, Username: user.Username}
	}

	logger.Log(ctx).Debug(ctx, msgUsersListed,
		zap.String("method", methodListUsers), zap.Int("count", len(result)))
	return result, nil
}

// AddExercise добавляет запись в журнал пользователя.
// Существование пользователя проверяется раньше обязательных полей.
func (u *TrackerUseCaseImpl) AddExercise(
	ctx context.Context,
	userID string,
	req *dto.AddExerciseRequest,
) (*dto.ExerciseResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddExercise), zap.String("user_id", userID))

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if !req.Description.Present || !req.Duration.Present {
		log.Debug(ctx, msgValidationError)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingExercise, entities.ErrExerciseFieldsRequired)
	}

	exercise := entities.Exercise{
		Description: req.Description.Text,
		Duration:    req.Duration.Number(),
		Date:        u.exerciseDate(req.Date),
	}

	user, err := u.users.AppendExercise(ctx, userID, exercise)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAppendingExercise, err)
	}

	log.Info(ctx, msgExerciseAdded, zap.Int("log_length", len(user.Log)))
	return &dto.ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    dto.Duration(exercise.Duration),
		Date:        exercise.Date.String(),
	}, nil
}

func (u *TrackerUseCaseImpl) exerciseDate(field dto.Field) calendar.Date {
	switch {
	case !field.Present:
		return u.calendar.Today(u.now())
	case field.IsNumber():
		return u.calendar.Day(u.calendar.FromUnixMilli(field.Number()))
	default:
		return u.calendar.ParseDay(field.Text)
	}
}

// GetLogs возвращает журнал пользователя, отфильтрованный по датам и ограниченный по количеству.
func (u *TrackerUseCaseImpl) GetLogs(ctx context.Context, userID string, query *dto.LogsQuery) (*dto.LogsResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetLogs), zap.String("user_id", userID))

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	key := logsCacheKey(user, query)
	if cached, ok := u.cachedLogs(ctx, log, key); ok {
		log.Debug(ctx, msgLogsCacheHit)
		return cached, nil
	}

	entries := u.filterLog(user.Log, query)

	response := &dto.LogsResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      make([]dto.LogEntry, len(entries)),
	}
	for i, e := range entries {
		response.Log[i] = dto.LogEntry{
			Description: e.Description,
			Duration:    dto.Duration(e.Duration),
			Date:        e.Date.String(),
		}
	}

	u.storeLogs(ctx, log, key, response)

	log.Debug(ctx, msgLogsServed, zap.Int("count", response.Count))
	return response, nil
}

// filterLog применяет фильтры from и to, затем limit. Исходный срез не изменяется.
func (u *TrackerUseCaseImpl) filterLog(log []entities.Exercise, query *dto.LogsQuery) []entities.Exercise {
	result := make([]entities.Exercise, len(log))
	copy(result, log)

	if query.From != "" {
		from := u.calendar.Parse(query.From)
		result = keep(result, func(e entities.Exercise) bool { return e.Date.NotBefore(from) })
	}

	if query.To != "" {
		to := u.calendar.Parse(query.To)
		result = keep(result, func(e entities.Exercise) bool { return e.Date.NotAfter(to) })
	}

	if query.Limit != "" {
		result = result[:numeric.SliceEnd(numeric.Parse(query.Limit), len(result))]
	}

	return result
}

func keep(log []entities.Exercise, pred func(entities.Exercise) bool) []entities.Exercise {
	kept := log[:0]
	for _, e := range log {
		if pred(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// logsCacheKey включает длину журнала: журнал только дополняется, поэтому длина служит версией.
func logsCacheKey(user *entities.User, query *dto.LogsQuery) string {
	params := url.Values{}
	params.Set("from", query.From)
	params.Set("to", query.To)
	params.Set("limit", query.Limit)
	return logsCachePrefix + user.ID + ":" + strconv.Itoa(len(user.Log)) + "?" + params.Encode()
}

func (u *TrackerUseCaseImpl) cachedLogs(ctx context.Context, log *logger.Logger, key string) (*dto.LogsResponse, bool) {
	raw, found, err := u.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgCacheReadError, zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var response dto.LogsResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		log.Warn(ctx, msgCacheDecodeErr, zap.Error(err), zap.String("key", key))
		if err := u.cache.Delete(ctx, key); err != nil {
			log.Warn(ctx, msgCacheEvictError, zap.Error(err))
		}
		return nil, false
	}
	return &response, true
}

func (u *TrackerUseCaseImpl) storeLogs(ctx context.Context, log *logger.Logger, key string, response *dto.LogsResponse) {
	raw, err := json.Marshal(response)
	if err != nil {
		log.Warn(ctx, msgCacheWriteError, zap.Error(err))
		return
	}
	if err := u.cache.Set(ctx, key, string(raw), u.cacheTTL); err != nil {
		log.Warn(ctx, msgCacheWriteError, zap.Error(err))
	}
}
