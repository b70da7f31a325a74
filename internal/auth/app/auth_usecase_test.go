package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notehive/internal/auth/app"
	"notehive/internal/auth/domain/entities"
	"notehive/internal/auth/domain/services"
)

var errDatabase = errors.New("database connection error")

const (
	testEmail    = "test@example.com"
	testUsername = "testuser"
	testPassword = "password123"
	testUserID   = "user-123"
)

func testUser() *entities.User {
	now := time.Now().Add(-24 * time.Hour)
	return &entities.User{
		ID:           testUserID,
		Email:        testEmail,
		Username:     testUsername,
		PasswordHash: "hashed_password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func expectTokenPair(tokenSvc *mockTokenService, tokenRepo *mockTokenRepository) {
	accessExpiry := time.Now().Add(15 * time.Minute)
	refreshExpiry := time.Now().Add(24 * time.Hour)

	tokenSvc.On("IssueAccessToken", mock.Anything, testUserID, testUsername).
		Return("access-token", accessExpiry, nil).Once()
	tokenSvc.On("IssueRefreshToken", mock.Anything, testUserID).
		Return("refresh-token", refreshExpiry, nil).Once()
	tokenRepo.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(t *services.RefreshToken) bool {
		return t.UserID == testUserID && t.Token == "refresh-token" && !t.IsRevoked
	})).Return(nil).Once()
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("успешная регистрация", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByEmail", mock.Anything, testEmail).
			Return(nil, entities.ErrUserNotFound).Once()
		passwordSvc.On("Hash", mock.Anything, testPassword).
			Return("hashed_password", nil).Once()
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == testEmail && u.Username == testUsername && u.PasswordHash == "hashed_password"
		})).Return(testUser(), nil).Once()
		expectTokenPair(tokenSvc, tokenRepo)

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
		tokens, err := authUseCase.Register(ctx, testEmail, testUsername, testPassword)

		require.NoError(t, err)
		require.NotNil(t, tokens)
		assert.Equal(t, testUserID, tokens.UserID)
		assert.Equal(t, "access-token", tokens.AccessToken)
		assert.Equal(t, "refresh-token", tokens.RefreshToken)

		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("невалидный email", func(t *testing.T) {
		authUseCase := app.NewAuthUseCase(new(mockUserRepository), new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))

		tokens, err := authUseCase.Register(ctx, "not-an-email", testUsername, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidEmail)
		assert.Nil(t, tokens)
	})

	t.Run("пустое имя пользователя", func(t *testing.T) {
		authUseCase := app.NewAuthUseCase(new(mockUserRepository), new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))

		tokens, err := authUseCase.Register(ctx, testEmail, "", testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrEmptyUsername)
		assert.Nil(t, tokens)
	})

	t.Run("короткий пароль", func(t *testing.T) {
		authUseCase := app.NewAuthUseCase(new(mockUserRepository), new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))

		tokens, err := authUseCase.Register(ctx, testEmail, testUsername, "a1b2c3")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPasswordTooShort)
		assert.Nil(t, tokens)
	})

	t.Run("пароль без цифр", func(t *testing.T) {
		authUseCase := app.NewAuthUseCase(new(mockUserRepository), new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))

		tokens, err := authUseCase.Register(ctx, testEmail, testUsername, "passwordonly")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPasswordTooWeak)
		assert.Nil(t, tokens)
	})

	t.Run("email уже зарегистрирован", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(testUser(), nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.Register(ctx, testEmail, testUsername, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
		assert.Nil(t, tokens)
		userRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("успешный вход", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(testUser(), nil).Once()
		passwordSvc.On("Verify", mock.Anything, testPassword, "hashed_password").Return(true, nil).Once()
		expectTokenPair(tokenSvc, tokenRepo)

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
		tokens, err := authUseCase.Login(ctx, testEmail, testPassword)

		require.NoError(t, err)
		assert.Equal(t, testUsername, tokens.Username)

		userRepo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
	})

	t.Run("несуществующий email неотличим от неверного пароля", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, testEmail).
			Return(nil, entities.ErrUserNotFound).Once()

		authUseCase := app.NewAuthUseCase(userRepo, new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.Login(ctx, testEmail, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, tokens)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(testUser(), nil).Once()
		passwordSvc.On("Verify", mock.Anything, "wrongpass1", "hashed_password").Return(false, nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, new(mockTokenRepository), passwordSvc, new(mockTokenService))
		tokens, err := authUseCase.Login(ctx, testEmail, "wrongpass1")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, tokens)
	})

	t.Run("ошибка БД при поиске пользователя", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errDatabase).Once()

		authUseCase := app.NewAuthUseCase(userRepo, new(mockTokenRepository),
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.Login(ctx, testEmail, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabase)
		assert.Nil(t, tokens)
	})
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	refreshToken := "stored-refresh-token"

	storedToken := func() *services.RefreshToken {
		return &services.RefreshToken{
			ID:        "token-1",
			UserID:    testUserID,
			Token:     refreshToken,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now().Add(-time.Hour),
		}
	}

	t.Run("успешное обновление с отзывом старого токена", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		tokenSvc := new(mockTokenService)

		tokenRepo.On("FindByToken", mock.Anything, refreshToken).Return(storedToken(), nil).Once()
		userRepo.On("FindByID", mock.Anything, testUserID).Return(testUser(), nil).Once()
		tokenRepo.On("RevokeToken", mock.Anything, refreshToken).Return(nil).Once()
		expectTokenPair(tokenSvc, tokenRepo)

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, new(mockPasswordService), tokenSvc)
		tokens, err := authUseCase.RefreshTokens(ctx, refreshToken)

		require.NoError(t, err)
		assert.Equal(t, "refresh-token", tokens.RefreshToken)

		tokenRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("отозванный токен отклоняется", func(t *testing.T) {
		tokenRepo := new(mockTokenRepository)
		revoked := storedToken()
		revoked.IsRevoked = true
		tokenRepo.On("FindByToken", mock.Anything, refreshToken).Return(revoked, nil).Once()

		authUseCase := app.NewAuthUseCase(new(mockUserRepository), tokenRepo,
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.RefreshTokens(ctx, refreshToken)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrRevokedRefreshToken)
		assert.Nil(t, tokens)
	})

	t.Run("просроченный токен отклоняется", func(t *testing.T) {
		tokenRepo := new(mockTokenRepository)
		expired := storedToken()
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		tokenRepo.On("FindByToken", mock.Anything, refreshToken).Return(expired, nil).Once()

		authUseCase := app.NewAuthUseCase(new(mockUserRepository), tokenRepo,
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.RefreshTokens(ctx, refreshToken)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, tokens)
	})

	t.Run("неизвестный токен", func(t *testing.T) {
		tokenRepo := new(mockTokenRepository)
		tokenRepo.On("FindByToken", mock.Anything, "unknown").
			Return(nil, services.ErrInvalidRefreshToken).Once()

		authUseCase := app.NewAuthUseCase(new(mockUserRepository), tokenRepo,
			new(mockPasswordService), new(mockTokenService))
		tokens, err := authUseCase.RefreshTokens(ctx, "unknown")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, tokens)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("успешный выход", func(t *testing.T) {
		tokenRepo := new(mockTokenRepository)
		tokenRepo.On("RevokeToken", mock.Anything, "refresh-token").Return(nil).Once()

		authUseCase := app.NewAuthUseCase(new(mockUserRepository), tokenRepo,
			new(mockPasswordService), new(mockTokenService))
		err := authUseCase.Logout(ctx, "refresh-token")

		require.NoError(t, err)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("неизвестный токен возвращает ошибку", func(t *testing.T) {
		tokenRepo := new(mockTokenRepository)
		tokenRepo.On("RevokeToken", mock.Anything, "unknown").
			Return(services.ErrInvalidRefreshToken).Once()

		authUseCase := app.NewAuthUseCase(new(mockUserRepository), tokenRepo,
			new(mockPasswordService), new(mockTokenService))
		err := authUseCase.Logout(ctx, "unknown")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
	})
}
