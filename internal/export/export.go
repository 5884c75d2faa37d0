// Package export writes a built snapshot as a single JSON document.
package export

import (
	buildinfo "blogdemo/internal/domain/build"
	"blogdemo/internal/domain/content"
	"blogdemo/internal/index"
	"github.com/goccy/go-json"
	"io"
)

type Options struct {
	Indent bool
}

type Document struct {
	Posts       []content.Post     `json:"posts"`
	Categories  []content.Category `json:"categories"`
	Tags        []content.Tag      `json:"tags"`
	Routes      []string           `json:"routes"`
	Fingerprint Fingerprint        `json:"fingerprint"`
}

type Fingerprint struct {
	Files       int    `json:"files"`
	ContentHash string `json:"content_hash"`
}

func NewDocument(snap *index.Snapshot, fp buildinfo.Fingerprint) Document {
	return Document{
		Posts:       snap.Posts(),
		Categories:  snap.Categories(),
		Tags:        snap.Tags(),
		Routes:      snap.DynamicRoutes(),
		Fingerprint: Fingerprint{Files: fp.Files, ContentHash: fp.ContentHash},
	}
}

func Write(w io.Writer, snap *index.Snapshot, fp buildinfo.Fingerprint, opt Options) error {
	enc := json.NewEncoder(w)
	if opt.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewDocument(snap, fp))
}
