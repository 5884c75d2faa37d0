package app

import (
	"blogdemo/internal/build"
	"blogdemo/internal/index"
	"context"
	"sync"
)

// Content builds the content snapshot on first use and hands the same
// result to every caller afterwards. Concurrent first callers share a
// single build.
type Content struct {
	load func() (*build.Result, error)
}

func NewContent(b *build.Builder) *Content {
	return &Content{
		load: sync.OnceValues(func() (*build.Result, error) {
			return b.Run(context.Background())
		}),
	}
}

// Snapshot returns the built snapshot, or the build error. A failed build
// is not retried.
func (c *Content) Snapshot() (*index.Snapshot, error) {
	res, err := c.load()
	if err != nil {
		return nil, err
	}
	return res.Snapshot, nil
}

func (c *Content) Result() (*build.Result, error) {
	return c.load()
}
