// Package entities содержит сущности домена трекера упражнений.
package entities

// User представляет пользователя и его журнал упражнений.
type User struct {
	ID       string
	Username string
	Log      []Exercise
}

// Clone возвращает копию пользователя с независимым журналом.
func (u *User) Clone() *User {
	clone := *u
	clone.Log = make([]Exercise, len(u.Log))
	copy(clone.Log, u.Log)
	return &clone
}
