// Package postgres provides PostgreSQL implementations of the notes repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notehive/internal/notes/domain/entities"
	"notehive/internal/notes/ports/repositories"
	"notehive/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const noteColumns = "id, user_id, title, content, pinned, archived, tags, created_at, updated_at"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД и возвращает созданную запись.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	var created entities.Note
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content, pinned, archived, tags)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+noteColumns,
		note.UserID, note.Title, note.Content, note.Pinned, note.Archived, note.Tags,
	).Scan(
		&created.ID, &created.UserID, &created.Title, &created.Content,
		&created.Pinned, &created.Archived, &created.Tags,
		&created.CreatedAt, &created.UpdatedAt,
	)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetByID получает неудаленную заметку по ID и ID владельца.
// Отсутствие подходящей записи возвращается как (nil, nil).
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("userID", userID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+`
         FROM notes
         WHERE id = $1 AND user_id = $2 AND deleted = FALSE`,
		noteID, userID,
	).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.Pinned, &note.Archived, &note.Tags,
		&note.CreatedAt, &note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// List получает список неудаленных заметок пользователя по фильтру.
// Все условия фильтра объединяются по AND; порядок: закрепленные первыми,
// затем по убыванию даты создания, при равенстве - по порядку вставки.
func (r *NoteRepository) List(ctx context.Context, userID string, filter *entities.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID))

	if filter == nil {
		filter = &entities.NoteFilter{}
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 AND deleted = FALSE`
	args := []interface{}{userID}

	if filter.Pinned != nil {
		args = append(args, *filter.Pinned)
		query += fmt.Sprintf(" AND pinned = $%d", len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		query += fmt.Sprintf(" AND archived = $%d", len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLikePattern(filter.Search)+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY pinned DESC, created_at DESC, seq ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.Pinned, &note.Archived, &note.Tags,
			&note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update обновляет существующую неудаленную заметку и возвращает новую версию.
// Отсутствие подходящей записи возвращается как (nil, nil).
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	var updated entities.Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes
         SET title = $1, content = $2, pinned = $3, archived = $4, tags = $5, updated_at = now()
         WHERE id = $6 AND user_id = $7 AND deleted = FALSE
         RETURNING `+noteColumns,
		note.Title, note.Content, note.Pinned, note.Archived, note.Tags,
		note.ID, note.UserID,
	).Scan(
		&updated.ID, &updated.UserID, &updated.Title, &updated.Content,
		&updated.Pinned, &updated.Archived, &updated.Tags,
		&updated.CreatedAt, &updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by user")
			return nil, nil
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &updated, nil
}

// SoftDelete помечает заметку как удаленную. Проверка существования
// учитывает только id и владельца, поэтому повторное удаление проходит успешно.
func (r *NoteRepository) SoftDelete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.SoftDelete"))
	log.Debug(ctx, "soft deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET deleted = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to soft delete note", zap.Error(err))
		return fmt.Errorf("failed to soft delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// escapeLikePattern экранирует специальные символы шаблона LIKE,
// чтобы поисковая строка трактовалась как обычная подстрока.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
