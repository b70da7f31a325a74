// Package services provides adapter implementations of the auth service ports.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "notehive/internal/auth/domain/services"
	svc "notehive/internal/auth/ports/services"
	"notehive/pkg/logger"
)

// ServiceBcrypt реализует PasswordService на основе bcrypt.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает новый сервис хэширования паролей.
// Недопустимая стоимость заменяется значением по умолчанию.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля.
func (s *ServiceBcrypt) Hash(ctx context.Context, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "ServiceBcrypt.Hash"))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		log.Error(ctx, "failed to hash password", zap.Error(err))
		return "", fmt.Errorf("hashing password: %w: %w", domain.ErrHashingFailed, err)
	}

	return string(hash), nil
}

// Verify проверяет соответствие пароля хэшу.
// Несовпадение не является ошибкой: возвращается (false, nil).
func (s *ServiceBcrypt) Verify(ctx context.Context, password, hash string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "ServiceBcrypt.Verify"))

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		log.Error(ctx, "failed to verify password", zap.Error(err))
		return false, fmt.Errorf("verifying password: %w", err)
	}

	return true, nil
}
