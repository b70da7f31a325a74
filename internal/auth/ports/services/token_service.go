package services

import (
	"context"
	"time"
)

// TokenService определяет выпуск и проверку токенов сессии.
// Access-токен несет идентификатор пользователя и живет недолго,
// refresh-токен непрозрачен и хранится на сервере до отзыва.
type TokenService interface {
	// IssueAccessToken выпускает access-токен для пользователя
	// и возвращает момент его истечения.
	IssueAccessToken(ctx context.Context, userID, username string) (string, time.Time, error)

	// IssueRefreshToken выпускает refresh-токен для ротации сессии.
	IssueRefreshToken(ctx context.Context, userID string) (string, time.Time, error)

	// ValidateAccessToken проверяет подпись и срок действия токена
	// и возвращает идентификатор пользователя.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
