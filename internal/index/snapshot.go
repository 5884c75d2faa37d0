package index

import (
	"blogdemo/internal/domain/content"
	"blogdemo/internal/domain/site"
	"sort"
)

// Snapshot is the immutable result of a content build. It keeps deep
// copies of its inputs and every accessor hands out a deep copy.
type Snapshot struct {
	posts      []content.Post
	categories []content.Category
	tags       []content.Tag

	postBySlug     map[string]int
	postByID       map[int]int
	categoryBySlug map[string]int
	tagBySlug      map[string]int
	byTag          map[int][]int
	byCategory     map[int][]int

	routes []string
}

// NewSnapshot orders posts for display and builds the lookup maps.
// Categories and tags keep the order they are given in.
func NewSnapshot(posts []content.Post, categories []content.Category, tags []content.Tag) *Snapshot {
	s := &Snapshot{
		posts:          cloneEach(posts, content.Post.Clone),
		categories:     cloneEach(categories, content.Category.Clone),
		tags:           cloneEach(tags, content.Tag.Clone),
		postBySlug:     make(map[string]int, len(posts)),
		postByID:       make(map[int]int, len(posts)),
		categoryBySlug: make(map[string]int, len(categories)),
		tagBySlug:      make(map[string]int, len(tags)),
		byTag:          make(map[int][]int),
		byCategory:     make(map[int][]int),
	}
	SortPosts(s.posts)

	routes := make([]site.Route, 0, len(posts)+len(categories)+len(tags))
	for i, p := range s.posts {
		s.postBySlug[p.Slug] = i
		s.postByID[p.ID] = i
		s.byCategory[p.Category.ID] = append(s.byCategory[p.Category.ID], i)

		seen := make(map[int]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			s.byTag[t.ID] = append(s.byTag[t.ID], i)
		}
		routes = append(routes, site.Route{Kind: site.RoutePost, Slug: p.Slug})
	}
	for i, c := range s.categories {
		s.categoryBySlug[c.Slug] = i
		routes = append(routes, site.Route{Kind: site.RouteCategory, Slug: c.Slug})
	}
	for i, t := range s.tags {
		s.tagBySlug[t.Slug] = i
		routes = append(routes, site.Route{Kind: site.RouteTag, Slug: t.Slug})
	}
	s.routes = site.Paths(routes)
	return s
}

// SortPosts orders posts by display time descending, then slug ascending.
func SortPosts(posts []content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].DisplayTime(), posts[j].DisplayTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

func (s *Snapshot) Posts() []content.Post {
	return cloneEach(s.posts, content.Post.Clone)
}

func (s *Snapshot) PostBySlug(slug string) (content.Post, bool) {
	i, ok := s.postBySlug[slug]
	if !ok {
		return content.Post{}, false
	}
	return s.posts[i].Clone(), true
}

func (s *Snapshot) PostByID(id int) (content.Post, bool) {
	i, ok := s.postByID[id]
	if !ok {
		return content.Post{}, false
	}
	return s.posts[i].Clone(), true
}

func (s *Snapshot) Categories() []content.Category {
	return cloneEach(s.categories, content.Category.Clone)
}

func (s *Snapshot) CategoryBySlug(slug string) (content.Category, bool) {
	i, ok := s.categoryBySlug[slug]
	if !ok {
		return content.Category{}, false
	}
	return s.categories[i].Clone(), true
}

func (s *Snapshot) CategoryByID(id int) (content.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return content.Category{}, false
}

func (s *Snapshot) Tags() []content.Tag {
	return cloneEach(s.tags, content.Tag.Clone)
}

func (s *Snapshot) TagBySlug(slug string) (content.Tag, bool) {
	i, ok := s.tagBySlug[slug]
	if !ok {
		return content.Tag{}, false
	}
	return s.tags[i].Clone(), true
}

func (s *Snapshot) TagByID(id int) (content.Tag, bool) {
	for _, t := range s.tags {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return content.Tag{}, false
}

// PostsByTagID returns the posts carrying the tag in display order. An
// unknown id yields an empty slice.
func (s *Snapshot) PostsByTagID(id int) []content.Post {
	return s.pick(s.byTag[id])
}

func (s *Snapshot) PostsByCategoryID(id int) []content.Post {
	return s.pick(s.byCategory[id])
}

// DynamicRoutes lists /posts/, /tags/ and /categories/ paths for every
// entity, sorted and deduplicated.
func (s *Snapshot) DynamicRoutes() []string {
	return cloneStrings(s.routes)
}

func (s *Snapshot) pick(idx []int) []content.Post {
	out := make([]content.Post, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.posts[i].Clone())
	}
	return out
}

// cloneEach deep-copies every element. It never returns nil, so empty
// collections encode as [].
func cloneEach[T any](s []T, clone func(T) T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

func cloneStrings(s []string) []string {
	return cloneEach(s, func(v string) string { return v })
}
