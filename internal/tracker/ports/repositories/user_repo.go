// Package repositories определяет интерфейсы хранилищ трекера.
package repositories

import (
	"context"

	"exercisetracker/internal/tracker/domain/entities"
)

// UserRepository определяет операции хранилища пользователей и их журналов.
// Возвращаемые пользователи - копии, изменение которых не влияет на хранилище.
type UserRepository interface {
	Create(ctx context.Context, username string) (*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	AppendExercise(ctx context.Context, userID string, exercise entities.Exercise) (*entities.User, error)
}
