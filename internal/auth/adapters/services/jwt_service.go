package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domain "notehive/internal/auth/domain/services"
	svc "notehive/internal/auth/ports/services"
	"notehive/pkg/logger"
)

// ErrInvalidAlgorithm возвращается при неверном алгоритме подписи токена.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService на основе HMAC-подписанных JWT.
type ServiceJWT struct {
	config domain.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: domain.JWTConfig{
			SecretKey:       []byte(secretKey),
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
	}
}

// domainToJWTClaims преобразует доменные claims в формат библиотеки JWT.
func domainToJWTClaims(claims domain.JWTClaims) Claims {
	return Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			Subject:   claims.UserID,
		},
	}
}

// IssueAccessToken выпускает JWT токен доступа.
func (s *ServiceJWT) IssueAccessToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "ServiceJWT.IssueAccessToken"),
		zap.String("userID", userID),
	)
	log.Debug(ctx, "generating access token")

	return s.generate(ctx, log, domain.JWTClaims{
		UserID:   userID,
		Username: username,
	}, s.config.AccessTokenTTL)
}

// IssueRefreshToken выпускает refresh токен.
func (s *ServiceJWT) IssueRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "ServiceJWT.IssueRefreshToken"),
		zap.String("userID", userID),
	)
	log.Debug(ctx, "generating refresh token")

	return s.generate(ctx, log, domain.JWTClaims{UserID: userID}, s.config.RefreshTokenTTL)
}

func (s *ServiceJWT) generate(ctx context.Context, log *logger.Logger, claims domain.JWTClaims, ttl time.Duration) (string, time.Time, error) {
	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("generating token: %w: empty secret key", domain.ErrGeneratingJWTToken)
	}

	now := time.Now()
	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(claims))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, "error signing token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("generating token: %w: %w", domain.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, "token generated", zap.Time("expiresAt", claims.ExpiresAt))
	return tokenString, claims.ExpiresAt, nil
}

// ValidateAccessToken проверяет JWT токен и возвращает ID пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "ServiceJWT.ValidateAccessToken"))
	log.Debug(ctx, "validating token")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, "token has expired")
			return "", fmt.Errorf("validating token: %w", domain.ErrExpiredJWTToken)
		}
		log.Debug(ctx, "error parsing token", zap.Error(err))
		return "", fmt.Errorf("parsing token: %w: %w", domain.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, "invalid token format")
		return "", fmt.Errorf("validating token: %w", domain.ErrInvalidJWTToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return "", fmt.Errorf("validating token: %w: empty user_id", domain.ErrInvalidJWTToken)
	}

	log.Debug(ctx, "token validated", zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
