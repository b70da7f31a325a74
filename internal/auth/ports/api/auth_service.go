// Package api defines the inbound ports of the auth service.
package api

import (
	"context"

	"notehive/internal/auth/domain/services"
)

// AuthUseCase определяет порт операций аутентификации.
// Каждая успешная операция входа выдает новую пару токенов.
type AuthUseCase interface {
	// Register создает пользователя и сразу открывает сессию.
	Register(ctx context.Context, email, username, password string) (*services.TokenPair, error)

	// Login открывает сессию по учетным данным.
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	// RefreshTokens отзывает переданный refresh-токен и выдает новую пару.
	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	// Logout отзывает refresh-токен и закрывает сессию.
	Logout(ctx context.Context, refreshToken string) error
}
