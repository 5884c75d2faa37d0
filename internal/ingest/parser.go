package ingest

import (
	domainerr "blogdemo/internal/domain/errors"
	"fmt"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
	"strings"
	"time"
)

const (
	sepLine  = "---\n"
	closeMid = "\n---\n"
)

type FrontMatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Excerpt     *string   `yaml:"excerpt"`
	PublishedAt Timestamp `yaml:"published_at"`
	UpdatedAt   Timestamp `yaml:"updated_at"`

	Author        AuthorRef     `yaml:"author"`
	Category      TermRef       `yaml:"category"`
	Tags          []TermRef     `yaml:"tags"`
	FeaturedImage FeaturedImage `yaml:"featured_image"`
}

type AuthorRef struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// TermRef declares a category or a tag.
type TermRef struct {
	Name  string  `yaml:"name"`
	Slug  string  `yaml:"slug"`
	Color *string `yaml:"color"`
}

type FeaturedImage struct {
	FileURL string `yaml:"file_url"`
	Width   *int   `yaml:"width"`
	Height  *int   `yaml:"height"`
}

// Timestamp is an RFC 3339 instant. The zero value means absent.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timestamp must be a scalar", value.Line)
	}
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid RFC 3339 timestamp %q", value.Line, value.Value)
	}
	t.Time = parsed.UTC()
	return nil
}

// Ptr returns nil for the zero Timestamp.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type ParsedSource struct {
	Path        string
	FrontMatter FrontMatter
	Body        string
}

// SplitFrontMatter separates the YAML block from the Markdown body. The
// text must open with a "---" line; the first "\n---\n" after it closes
// the block.
func SplitFrontMatter(contents string) (string, string, error) {
	rest, ok := strings.CutPrefix(contents, sepLine)
	if !ok {
		return "", "", domainerr.New(domainerr.KindMissingOpeningDelimiter, "missing opening frontmatter delimiter `---`")
	}
	end := strings.Index(rest, closeMid)
	if end < 0 {
		return "", "", domainerr.New(domainerr.KindMissingClosingDelimiter, "missing closing frontmatter delimiter `---`")
	}

	front := rest[:end]
	body := rest[end+len(closeMid):]
	if strings.TrimSpace(body) == "" {
		return "", "", domainerr.New(domainerr.KindEmptyBody, "markdown body cannot be empty")
	}
	return front, body, nil
}

func ParseFrontMatter(raw string) (FrontMatter, error) {
	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return FrontMatter{}, &domainerr.ContentError{Kind: domainerr.KindInvalidYAML, Msg: "invalid frontmatter YAML", Err: err}
	}
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Slug = strings.TrimSpace(fm.Slug)
	return fm, nil
}

type fieldCheck struct {
	field string
	value any
}

var required = validation.Required.Error("is required")

// Validate checks required fields in declaration order and reports the
// first one that is blank after trimming.
func (fm FrontMatter) Validate() error {
	checks := []fieldCheck{
		{"title", strings.TrimSpace(fm.Title)},
		{"slug", strings.TrimSpace(fm.Slug)},
		{"published_at", fm.PublishedAt.Time},
		{"author.name", strings.TrimSpace(fm.Author.Name)},
		{"author.email", strings.TrimSpace(fm.Author.Email)},
		{"category.name", strings.TrimSpace(fm.Category.Name)},
		{"category.slug", strings.TrimSpace(fm.Category.Slug)},
		{"featured_image.file_url", strings.TrimSpace(fm.FeaturedImage.FileURL)},
	}
	for i, tag := range fm.Tags {
		checks = append(checks,
			fieldCheck{fmt.Sprintf("tags[%d].name", i), strings.TrimSpace(tag.Name)},
			fieldCheck{fmt.Sprintf("tags[%d].slug", i), strings.TrimSpace(tag.Slug)},
		)
	}

	for _, c := range checks {
		if err := validation.Validate(c.value, required); err != nil {
			return &domainerr.ContentError{Kind: domainerr.KindMissingField, Field: c.field, Err: err}
		}
	}
	return nil
}

// ParseSource splits, decodes and validates one source file. Every error
// carries the source path.
func ParseSource(sf SourceFile) (ParsedSource, error) {
	front, body, err := SplitFrontMatter(sf.Contents)
	if err != nil {
		return ParsedSource{}, withPath(err, sf.Path)
	}
	fm, err := ParseFrontMatter(front)
	if err != nil {
		return ParsedSource{}, withPath(err, sf.Path)
	}
	if err := fm.Validate(); err != nil {
		return ParsedSource{}, withPath(err, sf.Path)
	}
	return ParsedSource{Path: sf.Path, FrontMatter: fm, Body: body}, nil
}

func withPath(err error, path string) error {
	if ce, ok := err.(*domainerr.ContentError); ok {
		return ce.WithPath(path)
	}
	return &domainerr.ContentError{Kind: domainerr.KindInternal, Path: path, Err: err}
}
