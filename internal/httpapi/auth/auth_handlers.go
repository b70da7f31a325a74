// Package auth содержит HTTP-обработчики аутентификации.
package auth

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehive/internal/auth/domain/entities"
	domainsvc "notehive/internal/auth/domain/services"
	"notehive/internal/auth/ports/api"
	"notehive/internal/httpapi/dto"
	"notehive/internal/httpapi/middleware"
	"notehive/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerRegister = "handling register request"
	LogHandlerLogin    = "handling login request"
	LogHandlerRefresh  = "handling refresh tokens request"
	LogHandlerLogout   = "handling logout request"
	LogHandlerProfile  = "handling get profile request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternalError      = "internal server error"
)

var validate = validator.New()

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := validate.Struct(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	tokens, err := h.authUseCase.Register(requestCtx, req.Email, req.Username, req.Password)
	if err != nil {
		log.Error(requestCtx, "failed to register user", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := validate.Struct(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	tokens, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, "failed to login user", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Refresh обрабатывает запрос на обновление пары токенов.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Refresh"))
	log.Debug(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := validate.Struct(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	tokens, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, "failed to refresh tokens", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(tokenResponse(tokens)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на отзыв refresh-токена.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Logout"))
	log.Debug(requestCtx, LogHandlerLogout)

	var req dto.LogoutRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := validate.Struct(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if err := h.authUseCase.Logout(requestCtx, req.RefreshToken); err != nil {
		log.Error(requestCtx, "failed to logout user", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(dto.MessageResponse{Message: "logged out successfully"}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetProfile"))
	log.Debug(requestCtx, LogHandlerProfile)

	userID := middleware.UserID(ctx)

	user, err := h.userUseCase.GetUserProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, "failed to get user profile", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func tokenResponse(tokens *domainsvc.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		UserID:       tokens.UserID,
		Username:     tokens.Username,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}

func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// badRequestErrors - доменные ошибки, соответствующие статусу 400.
var badRequestErrors = []error{
	domainsvc.ErrEmailAlreadyExists,
	entities.ErrInvalidEmail,
	entities.ErrEmptyUsername,
	entities.ErrPasswordTooShort,
	entities.ErrPasswordTooWeak,
}

// unauthorizedErrors - доменные ошибки, соответствующие статусу 401.
var unauthorizedErrors = []error{
	domainsvc.ErrInvalidCredentials,
	domainsvc.ErrInvalidRefreshToken,
	domainsvc.ErrRevokedRefreshToken,
}

// handleAuthError преобразует доменные ошибки в HTTP-статусы.
// В тело ответа попадает текст доменной ошибки, а не вся цепочка обертки.
func handleAuthError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := ErrMsgInternalError

	for _, domainErr := range badRequestErrors {
		if errors.Is(err, domainErr) {
			status = fiber.StatusBadRequest
			message = domainErr.Error()
		}
	}
	for _, domainErr := range unauthorizedErrors {
		if errors.Is(err, domainErr) {
			status = fiber.StatusUnauthorized
			message = domainErr.Error()
		}
	}
	if errors.Is(err, entities.ErrUserNotFound) {
		status = fiber.StatusNotFound
		message = entities.ErrUserNotFound.Error()
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}
