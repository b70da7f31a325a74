package api

import (
	"context"

	"notehive/internal/auth/domain/entities"
)

// UserUseCase определяет порт чтения профиля пользователя.
// Реализация может отвечать из кэша.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)
}
