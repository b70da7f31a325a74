package dto

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Pinned   bool     `json:"pinned"`
	Archived bool     `json:"archived"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest содержит данные для частичного обновления заметки.
// Nil-поле означает "не менять"; присутствующее пустое значение применяется
// (в частности, tags: [] очищает список тегов).
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Pinned   *bool     `json:"pinned"`
	Archived *bool     `json:"archived"`
	Tags     *[]string `json:"tags"`
}

// MessageResponse содержит текстовое подтверждение операции.
type MessageResponse struct {
	Message string `json:"message"`
}
