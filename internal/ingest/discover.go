package ingest

import (
	domainerr "blogdemo/internal/domain/errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"
)

type SourceFile struct {
	Path     string
	Contents string
}

// LoadDir reads every Markdown source under dir.
func LoadDir(dir string) ([]SourceFile, error) {
	return DiscoverSource(os.DirFS(dir), ".")
}

// DiscoverSource recursively collects files with the exact extension "md"
// under root and reads them as UTF-8. At least one file is required.
func DiscoverSource(fsys fs.FS, root string) ([]SourceFile, error) {
	var out []SourceFile

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &domainerr.ContentError{Kind: domainerr.KindIO, Path: p, Err: err}
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return &domainerr.ContentError{Kind: domainerr.KindIO, Path: p, Err: err}
		}
		if !utf8.Valid(raw) {
			return &domainerr.ContentError{Kind: domainerr.KindEncoding, Path: p, Msg: "file is not valid UTF-8"}
		}
		out = append(out, SourceFile{Path: p, Contents: string(raw)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &domainerr.ContentError{
			Kind: domainerr.KindEmptyCorpus,
			Path: root,
			Msg:  "no markdown files found",
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// isMarkdown matches "post.md" but not "post.MD", "post.markdown" or a
// dotfile named ".md".
func isMarkdown(name string) bool {
	ext := path.Ext(name)
	return ext == ".md" && strings.TrimSuffix(name, ext) != ""
}
