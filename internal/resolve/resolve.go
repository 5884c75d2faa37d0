// Package resolve folds the authors, categories and tags declared across
// all parsed sources into deduplicated tables with ids assigned 1..N in
// ascending key order.
package resolve

import (
	"blogdemo/internal/domain/content"
	domainerr "blogdemo/internal/domain/errors"
	"blogdemo/internal/ingest"
	"sort"
	"strings"
	"time"
)

// AuthorKey normalizes an email into the author table key.
func AuthorKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TermKey normalizes a category or tag slug.
func TermKey(slug string) string {
	return strings.TrimSpace(slug)
}

// AuthorTable maps AuthorKey(email) to the resolved author.
type AuthorTable map[string]content.Author

func (t AuthorTable) Lookup(email string) (content.Author, bool) {
	a, ok := t[AuthorKey(email)]
	return a, ok
}

func Authors(parsed []ingest.ParsedSource) (AuthorTable, error) {
	names := make(map[string]string)
	for _, ps := range parsed {
		key := AuthorKey(ps.FrontMatter.Author.Email)
		name := strings.TrimSpace(ps.FrontMatter.Author.Name)
		if prev, ok := names[key]; ok {
			if prev != name {
				return nil, &domainerr.ContentError{
					Kind: domainerr.KindConflictingAuthor,
					Path: ps.Path,
					Key:  key,
					Msg:  "author email declared with different names",
				}
			}
			continue
		}
		names[key] = name
	}

	table := make(AuthorTable, len(names))
	for i, key := range sortedKeys(names) {
		table[key] = content.Author{ID: i + 1, Name: names[key], Email: key}
	}
	return table, nil
}

type term struct {
	name  string
	color string
}

// fold merges TermRefs by slug. A slug that reappears with another
// name or color is rejected with kind.
func fold(parsed []ingest.ParsedSource, refs func(ingest.FrontMatter) []ingest.TermRef, defaultColor string, kind domainerr.Kind) (map[string]term, error) {
	out := make(map[string]term)
	for _, ps := range parsed {
		for _, ref := range refs(ps.FrontMatter) {
			key := TermKey(ref.Slug)
			t := term{name: strings.TrimSpace(ref.Name), color: defaultColor}
			if ref.Color != nil {
				t.color = *ref.Color
			}
			if prev, ok := out[key]; ok {
				if prev != t {
					return nil, &domainerr.ContentError{
						Kind: kind,
						Path: ps.Path,
						Key:  key,
						Msg:  "slug declared with different name or color",
					}
				}
				continue
			}
			out[key] = t
		}
	}
	return out, nil
}

func Categories(parsed []ingest.ParsedSource, now time.Time) ([]content.Category, error) {
	terms, err := fold(parsed, func(fm ingest.FrontMatter) []ingest.TermRef {
		return []ingest.TermRef{fm.Category}
	}, content.DefaultCategoryColor, domainerr.KindConflictingCategory)
	if err != nil {
		return nil, err
	}

	out := make([]content.Category, 0, len(terms))
	for i, slug := range sortedKeys(terms) {
		t := terms[slug]
		out = append(out, content.Category{
			ID:        i + 1,
			Name:      t.name,
			Slug:      slug,
			Color:     t.color,
			TextColor: content.DefaultTextColor,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out, nil
}

func Tags(parsed []ingest.ParsedSource, now time.Time) ([]content.Tag, error) {
	terms, err := fold(parsed, func(fm ingest.FrontMatter) []ingest.TermRef {
		return fm.Tags
	}, content.DefaultTagColor, domainerr.KindConflictingTag)
	if err != nil {
		return nil, err
	}

	out := make([]content.Tag, 0, len(terms))
	for i, slug := range sortedKeys(terms) {
		t := terms[slug]
		out = append(out, content.Tag{
			ID:        i + 1,
			Name:      t.name,
			Slug:      slug,
			Color:     t.color,
			TextColor: content.DefaultTextColor,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
