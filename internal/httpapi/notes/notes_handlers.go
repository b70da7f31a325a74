// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehive/internal/httpapi/dto"
	"notehive/internal/httpapi/middleware"
	"notehive/internal/metrics"
	"notehive/internal/notes/app"
	"notehive/internal/notes/domain/entities"
	"notehive/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgInternalError      = "internal server error"

	MsgNoteDeleted = "note deleted successfully"
)

// Параметры фильтрации списка заметок.
const (
	queryPinned   = "pinned"
	queryArchived = "archived"
	queryTag      = "tag"
	querySearch   = "search"
)

var validate = validator.New()

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase *app.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase *app.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// ListNotes обрабатывает запрос на получение списка заметок с фильтрацией.
// Условия фильтра комбинируются по И. Булевы параметры трехзначные:
// отсутствующий параметр не ограничивает выборку, присутствующий
// сравнивается со строкой "true".
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	filter := &entities.NoteFilter{
		Tag:    ctx.Query(queryTag),
		Search: ctx.Query(querySearch),
	}

	queries := ctx.Queries()
	if raw, ok := queries[queryPinned]; ok {
		pinned := raw == "true"
		filter.Pinned = &pinned
	}
	if raw, ok := queries[queryArchived]; ok {
		archived := raw == "true"
		filter.Archived = &archived
	}

	notes, err := h.noteUseCase.ListNotes(requestCtx, middleware.UserID(ctx), filter)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		metrics.IncNoteOperation("list", "error")
		return handleError(ctx, err)
	}
	metrics.IncNoteOperation("list", "success")

	// Пустой список сериализуется как [], а не null.
	if notes == nil {
		notes = []*entities.Note{}
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	note, err := h.noteUseCase.GetNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"))
	if err != nil {
		log.Debug(requestCtx, "failed to get note", zap.Error(err))
		metrics.IncNoteOperation("get", "error")
		return handleError(ctx, err)
	}
	metrics.IncNoteOperation("get", "success")

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := validate.Struct(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, middleware.UserID(ctx),
		req.Title, req.Content, req.Pinned, req.Archived, req.Tags)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		metrics.IncNoteOperation("create", "error")
		return handleError(ctx, err)
	}
	metrics.IncNoteOperation("create", "success")

	if err := ctx.Status(fiber.StatusCreated).JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на частичное обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	patch := &entities.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Pinned:   req.Pinned,
		Archived: req.Archived,
		Tags:     req.Tags,
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"), patch)
	if err != nil {
		log.Debug(requestCtx, "failed to update note", zap.Error(err))
		metrics.IncNoteOperation("update", "error")
		return handleError(ctx, err)
	}
	metrics.IncNoteOperation("update", "success")

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
// Удаление идемпотентно: повторный запрос для уже удаленной заметки
// также завершается успешно.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	if err := h.noteUseCase.DeleteNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id")); err != nil {
		log.Debug(requestCtx, "failed to delete note", zap.Error(err))
		metrics.IncNoteOperation("delete", "error")
		return handleError(ctx, err)
	}
	metrics.IncNoteOperation("delete", "success")

	if err := ctx.JSON(dto.MessageResponse{Message: MsgNoteDeleted}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// handleError преобразует доменные ошибки заметок в HTTP-статусы.
// Несуществующая, чужая и удаленная заметки дают одинаковый ответ 404.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := ErrMsgInternalError

	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		status = fiber.StatusNotFound
		message = ErrMsgNoteNotFound
	case entities.IsValidationError(err):
		status = fiber.StatusBadRequest
		message = validationMessage(err)
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}

// validationMessage возвращает текст доменной ошибки без цепочки обертки.
func validationMessage(err error) string {
	for _, domainErr := range []error{entities.ErrEmptyTitle, entities.ErrEmptyContent, entities.ErrTitleTooLong} {
		if errors.Is(err, domainErr) {
			return domainErr.Error()
		}
	}
	return ErrMsgInvalidRequestBody
}
