// Package api определяет интерфейсы сценариев использования трекера.
package api

import (
	"context"

	"exercisetracker/internal/tracker/app/dto"
)

// TrackerUseCase определяет операции над пользователями и их журналами.
type TrackerUseCase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)

	ListUsers(ctx context.Context) ([]dto.UserResponse, error)

	AddExercise(ctx context.Context, userID string, req *dto.AddExerciseRequest) (*dto.ExerciseResponse, error)

	GetLogs(ctx context.Context, userID string, query *dto.LogsQuery) (*dto.LogsResponse, error)
}
