package content

import (
	"strings"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

const (
	ContentVersion = "markdown-demo-v1"
	BodyBlockID    = "markdown-body"
	BlockTypeRaw   = "raw"
)

type RawBlock struct {
	HTML string `json:"html"`
}

type Block struct {
	Type string   `json:"type"`
	ID   string   `json:"id,omitempty"`
	Data RawBlock `json:"data"`
}

// PostContent is the block envelope stored in Post.Content.
// Time is the publish time in milliseconds since the epoch.
type PostContent struct {
	Time    uint64  `json:"time"`
	Blocks  []Block `json:"blocks"`
	Version string  `json:"version"`
}

// HTML concatenates the html of every raw block.
func (c PostContent) HTML() string {
	var b strings.Builder
	for _, blk := range c.Blocks {
		b.WriteString(blk.Data.HTML)
	}
	return b.String()
}

type PostAuthor struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

type PostCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

type PostTag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

type Post struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       PostContent  `json:"content"`
	Excerpt       *string      `json:"excerpt,omitempty"`
	FeaturedImage *Media       `json:"featured_image,omitempty"`
	PublishedAt   *time.Time   `json:"published_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Author        PostAuthor   `json:"author"`
	Category      PostCategory `json:"category"`
	Tags          []PostTag    `json:"tags"`
	LikesCount    int          `json:"likes_count"`
	ViewCount     int          `json:"view_count"`
	CommentCount  int          `json:"comment_count"`
	Status        PostStatus   `json:"status"`
}

// DisplayTime is the time used to order posts: published_at, else created_at.
func (p Post) DisplayTime() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// HasTag reports whether any of the post's tags has one of the given ids.
func (p Post) HasTag(ids ...int) bool {
	for _, t := range p.Tags {
		for _, id := range ids {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of p. The copy shares no slices or pointers
// with p.
func (p Post) Clone() Post {
	cp := p
	cp.Content.Blocks = cloneSlice(p.Content.Blocks)
	cp.Excerpt = clonePtr(p.Excerpt)
	cp.PublishedAt = clonePtr(p.PublishedAt)
	cp.Author.Avatar = clonePtr(p.Author.Avatar)
	cp.Tags = cloneSlice(p.Tags)
	if p.FeaturedImage != nil {
		m := p.FeaturedImage.Clone()
		cp.FeaturedImage = &m
	}
	return cp
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// cloneSlice keeps nil as nil so JSON output does not change.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
