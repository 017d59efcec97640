// Package memory содержит хранилище пользователей в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// Константы для логирования.
const (
	LogUserCreated     = "user created"
	LogExerciseAdded   = "exercise appended"
	LogUserLookupEmpty = "user lookup with empty id"

	errCtxFindingUser   = "finding user"
	errCtxAppendingUser = "appending exercise"
)

var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository хранит пользователей в порядке создания.
// Все методы безопасны для одновременного вызова.
type UserRepository struct {
	mu    sync.RWMutex
	users []*entities.User
	byID  map[string]*entities.User

	newID func() string
}

// Option настраивает UserRepository.
type Option func(*UserRepository)

// WithIDGenerator задает генератор идентификаторов.
func WithIDGenerator(fn func() string) Option {
	return func(r *UserRepository) {
		r.newID = fn
	}
}

// NewUserRepository создает пустое хранилище.
func NewUserRepository(opts ...Option) *UserRepository {
	r := &UserRepository{
		byID:  make(map[string]*entities.User),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create добавляет пользователя с новым идентификатором и пустым журналом.
func (r *UserRepository) Create(ctx context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = r.newID()
	}

	user := &entities.User{
		ID:       id,
		Username: username,
		Log:      []entities.Exercise{},
	}
	r.users = append(r.users, user)
	r.byID[id] = user

	logger.Log(ctx).Debug(ctx, LogUserCreated, zap.String("user_id", id))
	return user.Clone(), nil
}

// List возвращает копии всех пользователей в порядке создания.
func (r *UserRepository) List(_ context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entities.User, len(r.users))
	for i, u := range r.users {
		users[i] = u.Clone()
	}
	return users, nil
}

// FindByID возвращает копию пользователя или entities.ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, err := r.lookup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user.Clone(), nil
}

// AppendExercise добавляет запись в конец журнала пользователя.
func (r *UserRepository) AppendExercise(ctx context.Context, userID string, exercise entities.Exercise) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.lookup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAppendingUser, err)
	}
	user.Log = append(user.Log, exercise)

	logger.Log(ctx).Debug(ctx, LogExerciseAdded,
		zap.String("user_id", userID),
		zap.Int("log_length", len(user.Log)))
	return user.Clone(), nil
}

// lookup вызывается под блокировкой.
func (r *UserRepository) lookup(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		logger.Log(ctx).Debug(ctx, LogUserLookupEmpty)
		return nil, entities.ErrUserNotFound
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}
