package content

import "time"

const (
	DefaultCategoryColor = "#f97316"
	DefaultTagColor      = "#3b82f6"
	DefaultTextColor     = "#ffffff"
)

type Author struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Color       string    `json:"color"`
	TextColor   string    `json:"text_color"`
	IsActive    bool      `json:"is_active"`
	Description *string   `json:"description,omitempty"`
	ParentID    *int      `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Color       string    `json:"color"`
	TextColor   string    `json:"text_color"`
	IsActive    bool      `json:"is_active"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns the denormalized copy embedded in posts.
func (c Category) Snapshot() PostCategory {
	return PostCategory{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color}
}

func (t Tag) Snapshot() PostTag {
	return PostTag{ID: t.ID, Name: t.Name, Slug: t.Slug, Color: t.Color}
}

type Media struct {
	ID        int       `json:"id"`
	ObjectKey string    `json:"object_key"`
	FileURL   string    `json:"file_url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	Extension *string   `json:"extension,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Category) Clone() Category {
	c.Description = clonePtr(c.Description)
	c.ParentID = clonePtr(c.ParentID)
	return c
}

func (t Tag) Clone() Tag {
	t.Description = clonePtr(t.Description)
	return t
}

func (m Media) Clone() Media {
	m.Width = clonePtr(m.Width)
	m.Height = clonePtr(m.Height)
	m.Extension = clonePtr(m.Extension)
	return m
}
