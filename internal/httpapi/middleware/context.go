// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notehive/pkg/logger"
)

// Ключи Locals, используемые промежуточным ПО.
const (
	LocalsRequestContext = "requestContext"
	LocalsUserID         = "userID"
)

// HeaderRequestID - заголовок с внешним идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает контекст запроса с идентификатором
// из заголовка или сгенерированным.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(LocalsRequestContext, requestCtx)
		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса, подготовленный промежуточным ПО.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// UserID извлекает идентификатор аутентифицированного пользователя.
// Пустая строка означает, что запрос не прошел через auth middleware.
func UserID(ctx fiber.Ctx) string {
	userID, _ := ctx.Locals(LocalsUserID).(string)
	return userID
}
