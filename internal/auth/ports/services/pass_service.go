// Package services defines service interfaces for the auth service.
package services

import "context"

// PasswordService определяет хеширование и сверку паролей.
// Хеш пригоден для долгосрочного хранения, исходный пароль не сохраняется.
type PasswordService interface {
	// Hash возвращает хеш пароля для хранения.
	Hash(ctx context.Context, password string) (string, error)

	// Verify сверяет пароль с хешем. Несовпадение не является ошибкой.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
