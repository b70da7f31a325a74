// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notehive/internal/notes/domain/entities"
	"notehive/internal/notes/ports/repositories"
	"notehive/pkg/logger"
)

const (
	msgListingNotes  = "listing notes"
	msgGettingNote   = "getting note"
	msgCreatingNote  = "creating note"
	msgUpdatingNote  = "updating note"
	msgDeletingNote  = "soft deleting note"
	msgNoteNotFound  = "note not found"
	msgNoteCreated   = "note created"
	msgNoteUpdated   = "note updated"
	msgNoteDeleted   = "note soft deleted"
	msgInvalidFields = "note validation failed"

	errCtxListingNotes   = "listing notes"
	errCtxGettingNote    = "getting note"
	errCtxCreatingNote   = "creating note"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
	errCtxValidatingNote = "validating note"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Идентификатор пользователя считается доверенным: он извлекается из
// проверенного токена до вызова любого метода.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// ListNotes возвращает видимые заметки пользователя по фильтру.
// Пустой результат - валидный ответ, не ошибка.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string, filter *entities.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListNotes"), zap.String("userID", userID))
	log.Debug(ctx, msgListingNotes)

	notes, err := uc.noteRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return notes, nil
}

// GetNote возвращает заметку по ID, если она принадлежит пользователю и не удалена.
// Чужая, несуществующая и удаленная заметки неразличимы: во всех случаях
// возвращается ErrNoteNotFound.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.GetNote"), zap.String("noteID", noteID))
	log.Debug(ctx, msgGettingNote)

	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, entities.ErrNoteNotFound
	}

	return note, nil
}

// CreateNote создает новую заметку для пользователя.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, content string, pinned, archived bool, tags []string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"), zap.String("userID", userID))
	log.Debug(ctx, msgCreatingNote)

	note, err := entities.NewNote(userID, title, content, pinned, archived, tags)
	if err != nil {
		log.Debug(ctx, msgInvalidFields, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// UpdateNote применяет частичное обновление к заметке пользователя.
// Отсутствующие в patch поля не меняются; присутствующие пустые значения
// применяются. Между чтением и записью нет блокировки: гонка параллельных
// обновлений разрешается последней записью на уровне хранилища.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID string, patch *entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.UpdateNote"), zap.String("noteID", noteID))
	log.Debug(ctx, msgUpdatingNote)

	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, entities.ErrNoteNotFound
	}

	if err := patch.Apply(note); err != nil {
		log.Debug(ctx, msgInvalidFields, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}
	if updated == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, entities.ErrNoteNotFound
	}

	log.Info(ctx, msgNoteUpdated, zap.String("noteID", updated.ID))
	return updated, nil
}

// DeleteNote помечает заметку пользователя как удаленную.
// Повторное удаление уже удаленной заметки проходит успешно.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"), zap.String("noteID", noteID))
	log.Debug(ctx, msgDeletingNote)

	if err := uc.noteRepo.SoftDelete(ctx, noteID, userID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted, zap.String("noteID", noteID))
	return nil
}
