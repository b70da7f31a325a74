// Package noteview реализует клиентское представление списка заметок:
// фильтрацию, поиск и сортировку поверх уже полученного снимка данных.
// Пакет не обращается к сети и не мутирует входные данные.
package noteview

import (
	"sort"
	"strings"
	"time"
)

// Kind определяет вид фильтра списка заметок.
type Kind string

// Поддерживаемые виды фильтров.
const (
	KindAll      Kind = "all"
	KindPinned   Kind = "pinned"
	KindArchived Kind = "archived"
	KindTag      Kind = "tag"
)

const tagPrefix = "tag:"

// Note представляет заметку в том виде, в котором ее отдает сервер.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	Archived  bool      `json:"archived"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter описывает разобранный селектор фильтра.
type Filter struct {
	Kind Kind
	// Tag заполнен только для Kind == KindTag.
	Tag string
}

// ParseFilter разбирает строковый селектор фильтра.
// Селектор "tag:<значение>" выбирает фильтр по тегу; "pinned" и "archived"
// выбирают соответствующие виды; любое другое значение трактуется как "all".
func ParseFilter(selector string) Filter {
	switch {
	case selector == string(KindPinned):
		return Filter{Kind: KindPinned}
	case selector == string(KindArchived):
		return Filter{Kind: KindArchived}
	case strings.HasPrefix(selector, tagPrefix):
		return Filter{Kind: KindTag, Tag: strings.TrimPrefix(selector, tagPrefix)}
	default:
		return Filter{Kind: KindAll}
	}
}

// Project строит отображаемый список: применяет фильтр, затем поиск,
// затем сортировку. Закрепленные заметки идут первыми, внутри групп -
// по убыванию даты создания; порядок равных элементов сохраняется.
func Project(notes []Note, filter Filter, search string) []Note {
	result := make([]Note, 0, len(notes))

	for _, note := range notes {
		if matchesFilter(note, filter) {
			result = append(result, note)
		}
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := result[:0]
		for _, note := range result {
			if strings.Contains(strings.ToLower(note.Title), needle) ||
				strings.Contains(strings.ToLower(note.Content), needle) {
				filtered = append(filtered, note)
			}
		}
		result = filtered
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Pinned != result[j].Pinned {
			return result[i].Pinned
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

// Tags возвращает уникальные теги всего снимка в порядке первого появления.
// Список не зависит от активного фильтра и поиска.
func Tags(notes []Note) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, note := range notes {
		for _, tag := range note.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}

// matchesFilter проверяет заметку на соответствие фильтру.
// Фильтр по тегу не исключает архивные заметки.
func matchesFilter(note Note, filter Filter) bool {
	switch filter.Kind {
	case KindPinned:
		return note.Pinned && !note.Archived
	case KindArchived:
		return note.Archived
	case KindTag:
		return hasTag(note, filter.Tag)
	default:
		return !note.Archived
	}
}

func hasTag(note Note, tag string) bool {
	for _, t := range note.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
