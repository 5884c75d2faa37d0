package index

import (
	"blogdemo/internal/domain/content"
	"strings"
)

// PostQuery filters Snapshot.Query. Nil and empty fields do not filter.
type PostQuery struct {
	AuthorID   *int
	CategoryID *int
	TagIDs     []int
	Status     *content.PostStatus
	// Search matches title or excerpt, case-insensitively.
	Search *string
	Title  *string
	Page   int
}

type Page[T any] struct {
	Data    []T `json:"data"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Paginate wraps items as a single page holding all of them.
func Paginate[T any](items []T, page int) Page[T] {
	if page <= 0 {
		page = 1
	}
	return Page[T]{
		Data:    items,
		Total:   len(items),
		Page:    page,
		PerPage: max(len(items), 1),
	}
}

func (s *Snapshot) Query(q PostQuery) Page[content.Post] {
	var search, title string
	if q.Search != nil {
		search = strings.ToLower(*q.Search)
	}
	if q.Title != nil {
		title = strings.ToLower(*q.Title)
	}

	out := make([]content.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if q.AuthorID != nil && p.Author.ID != *q.AuthorID {
			continue
		}
		if q.CategoryID != nil && p.Category.ID != *q.CategoryID {
			continue
		}
		if len(q.TagIDs) > 0 && !p.HasTag(q.TagIDs...) {
			continue
		}
		if q.Status != nil && p.Status != *q.Status {
			continue
		}
		if q.Search != nil && !matchesSearch(p, search) {
			continue
		}
		if q.Title != nil && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		out = append(out, p.Clone())
	}
	return Paginate(out, q.Page)
}

func matchesSearch(p content.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	return p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), needle)
}
