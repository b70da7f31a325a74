// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"notehive/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
//
// GetByID и Update видят только неудаленные заметки владельца; List всегда
// исключает удаленные. SoftDelete проверяет существование только по id и
// владельцу, поэтому повторное удаление идемпотентно.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)
	List(ctx context.Context, userID string, filter *entities.NoteFilter) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	SoftDelete(ctx context.Context, noteID, userID string) error
}
