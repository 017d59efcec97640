// Package dto содержит объекты передачи данных трекера упражнений.
package dto

import (
	"encoding/json"
	"fmt"
	"math"
)

// CreateUserRequest содержит данные для создания пользователя.
type CreateUserRequest struct {
	Username Field
}

// AddExerciseRequest содержит данные новой записи журнала.
type AddExerciseRequest struct {
	Description Field
	Duration    Field
	Date        Field
}

// LogsQuery содержит необязательные параметры выборки журнала.
type LogsQuery struct {
	From  string
	To    string
	Limit string
}

// UserResponse содержит публичные данные пользователя.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ExerciseResponse содержит данные добавленной записи и ее владельца.
type ExerciseResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Description string   `json:"description"`
	Duration    Duration `json:"duration"`
	Date        string   `json:"date"`
}

// LogEntry представляет запись журнала в ответе.
type LogEntry struct {
	Description string   `json:"description"`
	Duration    Duration `json:"duration"`
	Date        string   `json:"date"`
}

// LogsResponse содержит отфильтрованный журнал пользователя.
type LogsResponse struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// Duration - длительность, которая сериализуется в null, если не является конечным числом.
type Duration float64

// MarshalJSON реализует json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling duration: %w", err)
	}
	return b, nil
}

// UnmarshalJSON реализует json.Unmarshaler; null читается как NaN.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Duration(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshaling duration: %w", err)
	}
	*d = Duration(f)
	return nil
}
