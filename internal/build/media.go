package build

import (
	"blogdemo/internal/domain/content"
	"blogdemo/internal/ingest"
	"path"
	"strings"
	"time"
)

var mimeByExt = map[string]string{
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
	"avif": "image/avif",
	"svg":  "image/svg+xml",
}

const defaultMime = "image/jpeg"

// MimeType guesses the media type from the URL extension. Unknown or
// missing extensions fall back to image/jpeg.
func MimeType(fileURL string) string {
	if m, ok := mimeByExt[extension(fileURL)]; ok {
		return m
	}
	return defaultMime
}

// ObjectKey is the storage key of a media URL: the trimmed URL without
// its leading slashes.
func ObjectKey(fileURL string) string {
	return strings.TrimLeft(strings.TrimSpace(fileURL), "/")
}

// extension returns the lowercased text after the last dot of the final
// path segment, or "" when there is none.
func extension(fileURL string) string {
	base := path.Base(strings.TrimSpace(fileURL))
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

func buildMedia(id int, img ingest.FeaturedImage, now time.Time) *content.Media {
	fileURL := strings.TrimSpace(img.FileURL)
	m := &content.Media{
		ID:        id,
		ObjectKey: ObjectKey(fileURL),
		FileURL:   fileURL,
		MimeType:  MimeType(fileURL),
		Width:     img.Width,
		Height:    img.Height,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ext := extension(fileURL); ext != "" {
		m.Extension = &ext
	}
	return m
}
