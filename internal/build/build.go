package build

import (
	buildinfo "blogdemo/internal/domain/build"
	"blogdemo/internal/domain/content"
	"blogdemo/internal/index"
	"blogdemo/internal/ingest"
	"blogdemo/internal/render"
	"blogdemo/internal/resolve"
	"context"
	"fmt"
	"github.com/rs/zerolog"
	"io/fs"
	"time"
)

// Builder runs the whole content pipeline over the Markdown tree at Root
// inside Source. Any failure aborts the build; there is no partial result.
type Builder struct {
	Source fs.FS
	Root   string
	// Now stamps category and tag timestamps. Defaults to time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
}

type Result struct {
	Snapshot    *index.Snapshot
	Fingerprint buildinfo.Fingerprint
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	root := b.Root
	if root == "" {
		root = "."
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	start := time.Now()
	files, err := ingest.DiscoverSource(b.Source, root)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	b.Logger.Debug().Int("files", len(files)).Str("root", root).Msg("sources loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, err := FromSources(files, now().UTC(), b.Logger)
	if err != nil {
		return nil, err
	}

	sources := make([]buildinfo.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, buildinfo.Source{Path: f.Path, Contents: f.Contents})
	}
	fp := buildinfo.ComputeFingerprint(sources)

	b.Logger.Info().
		Int("posts", len(snap.Posts())).
		Int("categories", len(snap.Categories())).
		Int("tags", len(snap.Tags())).
		Str("fingerprint", fp.Short()).
		Dur("took", time.Since(start)).
		Msg("content built")

	return &Result{Snapshot: snap, Fingerprint: fp}, nil
}

// FromSources builds the index from already loaded sources.
func FromSources(files []ingest.SourceFile, now time.Time, logger zerolog.Logger) (*index.Snapshot, error) {
	parsed, err := ingest.Ingest(files)
	if err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}

	authors, err := resolve.Authors(parsed)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	categories, err := resolve.Categories(parsed, now)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	tags, err := resolve.Tags(parsed, now)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	logger.Debug().
		Int("authors", len(authors)).
		Int("categories", len(categories)).
		Int("tags", len(tags)).
		Msg("entities resolved")

	tables := NewTables(authors, categories, tags)
	md := render.NewMarkdownRenderer()

	// id 按 slug 顺序分配，从 1 开始
	posts := make([]content.Post, 0, len(parsed))
	for i, ps := range parsed {
		p, err := BuildPost(i+1, ps, tables, md, now)
		if err != nil {
			return nil, fmt.Errorf("build post: %w", err)
		}
		posts = append(posts, p)
	}

	return index.NewSnapshot(posts, categories, tags), nil
}
