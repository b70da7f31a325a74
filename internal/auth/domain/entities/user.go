// Package entities defines the domain entities for the auth service.
package entities

import (
	"errors"
	"time"
)

// Ошибки валидации и поиска пользователя.
var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain at least one letter and one digit")
	ErrUserNotFound     = errors.New("user not found")
)

// User представляет учетную запись пользователя.
// PasswordHash хранит bcrypt-хеш, исходный пароль нигде не сохраняется.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
