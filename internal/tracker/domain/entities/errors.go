package entities

import "errors"

// Сообщения об ошибках валидации, возвращаемые клиенту.
const (
	MsgUsernameRequired       = "Username is required"
	MsgExerciseFieldsRequired = "Description and duration are required"
)

// Ошибки домена.
var (
	// ErrValidation сопоставляется со всеми ошибками ValidationError через errors.Is.
	ErrValidation   = errors.New("validation failed")
	ErrUserNotFound = errors.New("user not found")

	ErrUsernameRequired       error = &ValidationError{Message: MsgUsernameRequired}
	ErrExerciseFieldsRequired error = &ValidationError{Message: MsgExerciseFieldsRequired}
)

// ValidationError описывает отсутствие обязательного поля во входных данных.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is позволяет проверять любую ValidationError через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
