package build

import (
	"blogdemo/internal/domain/content"
	domainerr "blogdemo/internal/domain/errors"
	"blogdemo/internal/ingest"
	"blogdemo/internal/render"
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

var fixedNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

type post struct {
	slug      string
	published string
	updated   string
	email     string
	author    string
	catName   string
	catSlug   string
	tags      []string
	image     string
	body      string
}

func (p post) markdown() string {
	if p.published == "" {
		p.published = "2026-02-18T12:00:00Z"
	}
	if p.email == "" {
		p.email = "demo@example.com"
	}
	if p.author == "" {
		p.author = "Demo Author"
	}
	if p.catSlug == "" {
		p.catSlug, p.catName = "rust", "Rust"
	}
	if p.image == "" {
		p.image = "/assets/logo.png"
	}
	if p.body == "" {
		p.body = "# Hello\n\nBody of " + p.slug + ".\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: \"Title %s\"\nslug: %q\nexcerpt: \"About %s\"\n", p.slug, p.slug, p.slug)
	fmt.Fprintf(&b, "published_at: %q\n", p.published)
	if p.updated != "" {
		fmt.Fprintf(&b, "updated_at: %q\n", p.updated)
	}
	fmt.Fprintf(&b, "author:\n  name: %q\n  email: %q\n", p.author, p.email)
	fmt.Fprintf(&b, "category:\n  name: %q\n  slug: %q\n", p.catName, p.catSlug)
	b.WriteString("tags:\n")
	for _, t := range p.tags {
		fmt.Fprintf(&b, "  - name: %q\n    slug: %q\n", strings.ToUpper(t), t)
	}
	if len(p.tags) == 0 {
		b.WriteString("  []\n")
	}
	fmt.Fprintf(&b, "featured_image:\n  file_url: %q\n---\n%s", p.image, p.body)
	return b.String()
}

func corpus(posts ...post) fstest.MapFS {
	fsys := fstest.MapFS{}
	for i, p := range posts {
		fsys[fmt.Sprintf("posts/%02d-%s.md", i, p.slug)] = &fstest.MapFile{Data: []byte(p.markdown())}
	}
	return fsys
}

func run(t *testing.T, fsys fstest.MapFS) (*Result, error) {
	t.Helper()
	b := &Builder{
		Source: fsys,
		Root:   "posts",
		Now:    func() time.Time { return fixedNow },
		Logger: zerolog.Nop(),
	}
	return b.Run(context.Background())
}

func mustRun(t *testing.T, fsys fstest.MapFS) *Result {
	t.Helper()
	res, err := run(t, fsys)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return res
}

func TestSinglePostRoundTrip(t *testing.T) {
	res := mustRun(t, corpus(post{slug: "hello", tags: []string{"dioxus"}}))
	snap := res.Snapshot

	posts := snap.Posts()
	if len(posts) != 1 || len(snap.Categories()) != 1 || len(snap.Tags()) != 1 {
		t.Fatalf("counts: posts=%d categories=%d tags=%d", len(posts), len(snap.Categories()), len(snap.Tags()))
	}
	p := posts[0]
	if p.ID != 1 || snap.Categories()[0].ID != 1 || snap.Tags()[0].ID != 1 {
		t.Fatalf("ids should all be 1: post=%d", p.ID)
	}
	if p.Author.ID != 1 || p.Category.Slug != "rust" || p.Tags[0].Slug != "dioxus" {
		t.Fatalf("references = %+v %+v %+v", p.Author, p.Category, p.Tags)
	}
	if p.Status != content.StatusPublished || p.LikesCount != 0 || p.ViewCount != 0 || p.CommentCount != 0 {
		t.Fatalf("defaults = %+v", p)
	}
	if !p.UpdatedAt.Equal(*p.PublishedAt) || !p.CreatedAt.Equal(*p.PublishedAt) {
		t.Fatalf("updated_at should fall back to published_at")
	}

	c := p.Content
	if c.Version != content.ContentVersion || len(c.Blocks) != 1 || c.Blocks[0].ID != content.BodyBlockID {
		t.Fatalf("content = %+v", c)
	}
	if c.Time != uint64(p.PublishedAt.UnixMilli()) {
		t.Fatalf("time = %d", c.Time)
	}
	if !strings.Contains(c.HTML(), `<h1 id="hello">Hello</h1>`) {
		t.Fatalf("html = %s", c.HTML())
	}

	m := p.FeaturedImage
	if m == nil || m.ID != 1 || m.ObjectKey != "assets/logo.png" || m.MimeType != "image/png" || *m.Extension != "png" {
		t.Fatalf("media = %+v", m)
	}
	if !m.CreatedAt.Equal(fixedNow) || !m.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("media timestamps should use Now, got %s / %s", m.CreatedAt, m.UpdatedAt)
	}

	if !snap.Categories()[0].CreatedAt.Equal(fixedNow) {
		t.Fatalf("category timestamps should use Now")
	}
	if res.Fingerprint.Files != 1 || len(res.Fingerprint.ContentHash) != 64 {
		t.Fatalf("fingerprint = %+v", res.Fingerprint)
	}
}

func TestUpdatedAtFromFrontMatter(t *testing.T) {
	res := mustRun(t, corpus(post{slug: "a", updated: "2026-02-20T08:00:00Z"}))
	p := res.Snapshot.Posts()[0]
	if got := p.UpdatedAt.Format(time.RFC3339); got != "2026-02-20T08:00:00Z" {
		t.Fatalf("updated_at = %s", got)
	}
}

func TestDuplicateSlugFails(t *testing.T) {
	_, err := run(t, corpus(post{slug: "same"}, post{slug: "same"}))
	if domainerr.KindOf(err) != domainerr.KindDuplicateSlug {
		t.Fatalf("want duplicate slug, got %v", err)
	}
}

func TestMissingTitleFails(t *testing.T) {
	fsys := corpus(post{slug: "a"})
	for name, f := range fsys {
		f.Data = []byte(strings.Replace(string(f.Data), "title: \"Title a\"\n", "", 1))
		fsys[name] = f
	}
	_, err := run(t, fsys)
	var ce *domainerr.ContentError
	if !errors.As(err, &ce) || ce.Kind != domainerr.KindMissingField || ce.Field != "title" {
		t.Fatalf("want missing title, got %v", err)
	}
	if ce.Path != "posts/00-a.md" {
		t.Fatalf("path = %s", ce.Path)
	}
}

func TestCrossFileCategoryMerge(t *testing.T) {
	res := mustRun(t, corpus(post{slug: "one"}, post{slug: "two"}))
	snap := res.Snapshot
	cats := snap.Categories()
	if len(cats) != 1 {
		t.Fatalf("categories = %+v", cats)
	}
	got := snap.PostsByCategoryID(cats[0].ID)
	if len(got) != 2 {
		t.Fatalf("posts in category = %d", len(got))
	}
}

func TestSortOrder(t *testing.T) {
	res := mustRun(t, corpus(
		post{slug: "old", published: "2026-01-01T00:00:00Z"},
		post{slug: "new", published: "2026-03-01T00:00:00Z"},
		post{slug: "tie-b", published: "2026-02-01T00:00:00Z"},
		post{slug: "tie-a", published: "2026-02-01T00:00:00Z"},
	))
	var slugs []string
	for _, p := range res.Snapshot.Posts() {
		slugs = append(slugs, p.Slug)
	}
	if got := strings.Join(slugs, ","); got != "new,tie-a,tie-b,old" {
		t.Fatalf("order = %s", got)
	}

	// ids follow slug order, not display order
	if p, _ := res.Snapshot.PostBySlug("new"); p.ID != 1 {
		t.Fatalf("new id = %d", p.ID)
	}
	if p, _ := res.Snapshot.PostBySlug("tie-b"); p.ID != 4 {
		t.Fatalf("tie-b id = %d", p.ID)
	}
}

func TestCategoryConflictFails(t *testing.T) {
	_, err := run(t, corpus(
		post{slug: "a", catSlug: "lang", catName: "Rust"},
		post{slug: "b", catSlug: "lang", catName: "Go"},
	))
	var ce *domainerr.ContentError
	if !errors.As(err, &ce) || ce.Kind != domainerr.KindConflictingCategory || ce.Key != "lang" {
		t.Fatalf("want category conflict, got %v", err)
	}
}

func TestAuthorConflictFails(t *testing.T) {
	_, err := run(t, corpus(
		post{slug: "a", email: "x@example.com", author: "X"},
		post{slug: "b", email: "X@Example.com", author: "Y"},
	))
	if domainerr.KindOf(err) != domainerr.KindConflictingAuthor {
		t.Fatalf("want author conflict, got %v", err)
	}
}

func TestEmptyCorpusFails(t *testing.T) {
	_, err := run(t, fstest.MapFS{"posts/readme.txt": {Data: []byte("x")}})
	if domainerr.KindOf(err) != domainerr.KindEmptyCorpus {
		t.Fatalf("want empty corpus, got %v", err)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := &Builder{Source: corpus(post{slug: "a"}), Root: "posts", Logger: zerolog.Nop()}
	if _, err := b.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestBuildPostUnknownReferences(t *testing.T) {
	ps := ingest.ParsedSource{
		Path: "posts/x.md",
		Body: "body",
		FrontMatter: ingest.FrontMatter{
			Title:    "X",
			Slug:     "x",
			Author:   ingest.AuthorRef{Name: "A", Email: "a@example.com"},
			Category: ingest.TermRef{Name: "C", Slug: "c"},
			Tags:     []ingest.TermRef{{Name: "T", Slug: "t"}},
		},
	}
	authors := map[string]content.Author{"a@example.com": {ID: 1, Name: "A", Email: "a@example.com"}}
	md := render.NewMarkdownRenderer()

	_, err := BuildPost(1, ps, NewTables(authors, nil, nil), md, fixedNow)
	if domainerr.KindOf(err) != domainerr.KindUnknownCategory || !strings.Contains(err.Error(), "posts/x.md") {
		t.Fatalf("want unknown category, got %v", err)
	}

	cats := []content.Category{{ID: 1, Slug: "c"}}
	_, err = BuildPost(1, ps, NewTables(authors, cats, nil), md, fixedNow)
	var ce *domainerr.ContentError
	if !errors.As(err, &ce) || ce.Kind != domainerr.KindUnknownTag || ce.Key != "t" {
		t.Fatalf("want unknown tag, got %v", err)
	}

	_, err = BuildPost(1, ps, NewTables(nil, cats, nil), md, fixedNow)
	if domainerr.KindOf(err) != domainerr.KindInternal {
		t.Fatalf("want internal error, got %v", err)
	}
}

func TestMedia(t *testing.T) {
	tests := []struct {
		url, mime, key string
		ext            *string
	}{
		{"/assets/logo.PNG", "image/png", "assets/logo.PNG", ptr("png")},
		{"img/a.webp", "image/webp", "img/a.webp", ptr("webp")},
		{"/x.gif", "image/gif", "x.gif", ptr("gif")},
		{"/x.avif", "image/avif", "x.avif", ptr("avif")},
		{"/x.svg", "image/svg+xml", "x.svg", ptr("svg")},
		{"/photo.jpeg", "image/jpeg", "photo.jpeg", ptr("jpeg")},
		{"/noext", "image/jpeg", "noext", nil},
		{"/dir.v2/noext", "image/jpeg", "dir.v2/noext", nil},
	}
	for _, tt := range tests {
		m := buildMedia(3, ingest.FeaturedImage{FileURL: tt.url}, fixedNow)
		if m.MimeType != tt.mime || m.ObjectKey != tt.key || m.ID != 3 || m.Size != 0 {
			t.Errorf("%s: got %+v", tt.url, m)
		}
		if (m.Extension == nil) != (tt.ext == nil) || (m.Extension != nil && *m.Extension != *tt.ext) {
			t.Errorf("%s: extension = %v", tt.url, m.Extension)
		}
	}
}

func TestContentTimeClampsNegative(t *testing.T) {
	if got := contentBlock("<p>x</p>", -5).Time; got != 0 {
		t.Fatalf("time = %d", got)
	}
}

func ptr(s string) *string { return &s }
