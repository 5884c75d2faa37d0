package build

import (
	"blogdemo/internal/domain/content"
	domainerr "blogdemo/internal/domain/errors"
	"blogdemo/internal/ingest"
	"blogdemo/internal/render"
	"blogdemo/internal/resolve"
	"fmt"
	"time"
)

// Tables are the resolved entities a post may reference.
type Tables struct {
	Authors    resolve.AuthorTable
	Categories map[string]content.Category
	Tags       map[string]content.Tag
}

func NewTables(authors resolve.AuthorTable, categories []content.Category, tags []content.Tag) Tables {
	t := Tables{
		Authors:    authors,
		Categories: make(map[string]content.Category, len(categories)),
		Tags:       make(map[string]content.Tag, len(tags)),
	}
	for _, c := range categories {
		t.Categories[c.Slug] = c
	}
	for _, tg := range tags {
		t.Tags[tg.Slug] = tg
	}
	return t
}

// BuildPost turns one parsed source into a published post with the given id.
// now stamps the featured media, like the category and tag timestamps.
func BuildPost(id int, ps ingest.ParsedSource, tables Tables, md *render.MarkdownRenderer, now time.Time) (content.Post, error) {
	fm := ps.FrontMatter

	author, ok := tables.Authors.Lookup(fm.Author.Email)
	if !ok {
		return content.Post{}, &domainerr.ContentError{
			Kind: domainerr.KindInternal,
			Path: ps.Path,
			Key:  resolve.AuthorKey(fm.Author.Email),
			Msg:  "author missing from resolved table",
		}
	}

	catSlug := resolve.TermKey(fm.Category.Slug)
	category, ok := tables.Categories[catSlug]
	if !ok {
		return content.Post{}, &domainerr.ContentError{
			Kind:  domainerr.KindUnknownCategory,
			Path:  ps.Path,
			Field: "category.slug",
			Key:   catSlug,
		}
	}

	tags := make([]content.PostTag, 0, len(fm.Tags))
	for i, ref := range fm.Tags {
		slug := resolve.TermKey(ref.Slug)
		tag, ok := tables.Tags[slug]
		if !ok {
			return content.Post{}, &domainerr.ContentError{
				Kind:  domainerr.KindUnknownTag,
				Path:  ps.Path,
				Field: fmt.Sprintf("tags[%d].slug", i),
				Key:   slug,
			}
		}
		tags = append(tags, tag.Snapshot())
	}

	publishedAt := fm.PublishedAt.Time
	updatedAt := publishedAt
	if !fm.UpdatedAt.IsZero() {
		updatedAt = fm.UpdatedAt.Time
	}

	res, err := md.Render([]byte(ps.Body))
	if err != nil {
		return content.Post{}, &domainerr.ContentError{
			Kind: domainerr.KindInternal,
			Path: ps.Path,
			Msg:  "render markdown",
			Err:  err,
		}
	}

	return content.Post{
		ID:            id,
		Title:         fm.Title,
		Slug:          fm.Slug,
		Content:       contentBlock(string(res.HTML), publishedAt.UnixMilli()),
		Excerpt:       fm.Excerpt,
		FeaturedImage: buildMedia(id, fm.FeaturedImage, now),
		PublishedAt:   fm.PublishedAt.Ptr(),
		CreatedAt:     publishedAt,
		UpdatedAt:     updatedAt,
		Author: content.PostAuthor{
			ID:    author.ID,
			Name:  fm.Author.Name,
			Email: fm.Author.Email,
		},
		Category: category.Snapshot(),
		Tags:     tags,
		Status:   content.StatusPublished,
	}, nil
}

func contentBlock(html string, millis int64) content.PostContent {
	if millis < 0 {
		millis = 0
	}
	return content.PostContent{
		Time: uint64(millis),
		Blocks: []content.Block{{
			Type: content.BlockTypeRaw,
			ID:   content.BodyBlockID,
			Data: content.RawBlock{HTML: html},
		}},
		Version: content.ContentVersion,
	}
}
