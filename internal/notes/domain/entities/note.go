// Package entities defines the domain entities for the notes service.
package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength - максимальная длина заголовка заметки в символах.
const MaxTitleLength = 200

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrTitleTooLong = errors.New("title cannot be more than 200 characters")
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	Archived  bool      `json:"archived"`
	Tags      []string  `json:"tags"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteFilter описывает параметры выборки списка заметок.
// Nil-поля означают отсутствие фильтра по соответствующему признаку.
type NoteFilter struct {
	Pinned   *bool
	Archived *bool
	Tag      string
	Search   string
}

// NotePatch описывает частичное обновление заметки.
// Nil-поле означает "не менять"; присутствующее пустое значение применяется.
type NotePatch struct {
	Title    *string
	Content  *string
	Pinned   *bool
	Archived *bool
	Tags     *[]string
}

// NewNote создает новую заметку с нормализованными и проверенными полями.
func NewNote(userID, title, content string, pinned, archived bool, tags []string) (*Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	return &Note{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Pinned:   pinned,
		Archived: archived,
		Tags:     NormalizeTags(tags),
	}, nil
}

// ValidateTitle проверяет заголовок, уже очищенный от пробельных символов.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateContent проверяет содержимое, уже очищенное от пробельных символов.
func ValidateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	return nil
}

// NormalizeTags приводит теги к нижнему регистру и убирает пробельные символы.
// Порядок и дубликаты сохраняются, дедупликацией занимается клиент.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(tag)))
	}
	return normalized
}

// Apply применяет частичное обновление к заметке.
// Применяются только присутствующие поля; title и content проходят ту же
// проверку, что и при создании.
func (p *NotePatch) Apply(note *Note) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		note.Title = title
	}
	if p.Content != nil {
		content := strings.TrimSpace(*p.Content)
		if err := ValidateContent(content); err != nil {
			return err
		}
		note.Content = content
	}
	if p.Pinned != nil {
		note.Pinned = *p.Pinned
	}
	if p.Archived != nil {
		note.Archived = *p.Archived
	}
	if p.Tags != nil {
		note.Tags = NormalizeTags(*p.Tags)
	}
	return nil
}

// IsValidationError сообщает, относится ли ошибка к проверке полей заметки.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrTitleTooLong)
}
