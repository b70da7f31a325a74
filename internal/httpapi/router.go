// Package httpapi содержит компоненты HTTP сервера.
package httpapi

import (
	"github.com/gofiber/fiber/v3"

	"notehive/internal/auth/ports/api"
	svc "notehive/internal/auth/ports/services"
	"notehive/internal/httpapi/auth"
	"notehive/internal/httpapi/middleware"
	"notehive/internal/httpapi/notes"
	"notehive/internal/notes/app"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	fiberApp *fiber.App,
	authUseCase api.AuthUseCase,
	userUseCase api.UserUseCase,
	noteUseCase *app.NoteUseCase,
	tokenService svc.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase, userUseCase)
	notesHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewRequestIDMiddleware())
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())
	fiberApp.Use(middleware.NewMetricsMiddleware())

	fiberApp.Get("/api/health", func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (публичные).
	authRoutes := fiberApp.Group("/api/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	// Профиль пользователя (требует авторизации).
	userRoutes := fiberApp.Group("/api/user")
	userRoutes.Use(middleware.NewAuthMiddleware(tokenService))
	userRoutes.Get("/profile", authHandler.GetProfile)

	// Маршруты заметок (требуют авторизации).
	notesRoutes := fiberApp.Group("/api/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(tokenService))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
