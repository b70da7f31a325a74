package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notehive/internal/auth/domain/entities"
	"notehive/internal/auth/ports/api"
	"notehive/internal/auth/ports/cache"
	"notehive/internal/auth/ports/repositories"
	"notehive/pkg/logger"
)

// ProfileCacheKeyPrefix - префикс ключей кэша профилей.
const ProfileCacheKeyPrefix = "profile:"

const (
	msgGettingProfile  = "getting user profile"
	msgProfileCacheHit = "user profile served from cache"
	msgProfileCached   = "user profile stored in cache"

	errCtxFindingProfile = "finding user profile"
	errCtxDecodingCached = "decoding cached profile"
)

// cachedProfile - сериализуемое представление профиля в кэше.
type cachedProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUseCaseImpl реализует интерфейс api.UserUseCase с кэшированием профилей.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewUserUseCase создает новый экземпляр сервиса профилей.
// Кэш может быть nil, тогда каждый запрос идет в хранилище.
func NewUserUseCase(userRepo repositories.UserRepository, profileCache cache.Cache, cacheTTL time.Duration) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		cache:    profileCache,
		cacheTTL: cacheTTL,
	}
}

// GetUserProfile возвращает профиль пользователя, используя сквозное чтение через кэш.
// Ошибки кэша не фатальны: запрос продолжает выполняться через хранилище.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetUserProfile"), zap.String("userID", userID))
	log.Debug(ctx, msgGettingProfile)

	cacheKey := ProfileCacheKeyPrefix + userID

	if u.cache != nil {
		if cached, err := u.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var profile cachedProfile
			if err := json.Unmarshal([]byte(cached), &profile); err != nil {
				log.Warn(ctx, errCtxDecodingCached, zap.Error(err))
			} else {
				log.Debug(ctx, msgProfileCacheHit)
				return &entities.User{
					ID:        profile.ID,
					Email:     profile.Email,
					Username:  profile.Username,
					CreatedAt: profile.CreatedAt,
					UpdatedAt: profile.UpdatedAt,
				}, nil
			}
		}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}

	if u.cache != nil {
		encoded, err := json.Marshal(cachedProfile{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		})
		if err == nil {
			if err := u.cache.Set(ctx, cacheKey, string(encoded), u.cacheTTL); err == nil {
				log.Debug(ctx, msgProfileCached)
			}
		}
	}

	return user, nil
}
