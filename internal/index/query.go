package index

import (
	"blogdemo/internal/domain/content"
	"errors"
	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
	"strings"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Page int
	Size int
}

func (s *Store) GetPost(slug string) (content.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Post{}, ErrNotFound
	}
	var p content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPosts)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

// Fingerprint returns the corpus fingerprint recorded by the last Rebuild.
func (s *Store) Fingerprint() (string, error) {
	var fp string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(metaFingerprint)
		if v == nil {
			return ErrNotFound
		}
		fp = string(v)
		return nil
	})
	return fp, err
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// List pages through all posts in display order.
func (s *Store) List(opt ListOptions) ([]content.Post, error) {
	return s.listIndex(opt, func(tx *bolt.Tx) *bolt.Bucket {
		return tx.Bucket(bIdxPublished)
	})
}

func (s *Store) ListByTag(id int, opt ListOptions) ([]content.Post, error) {
	return s.listIndex(opt, func(tx *bolt.Tx) *bolt.Bucket {
		return subBucket(tx, bIdxTag, idKey(id))
	})
}

func (s *Store) ListByCategory(id int, opt ListOptions) ([]content.Post, error) {
	return s.listIndex(opt, func(tx *bolt.Tx) *bolt.Bucket {
		return subBucket(tx, bIdxCat, idKey(id))
	})
}

func subBucket(tx *bolt.Tx, parent, name []byte) *bolt.Bucket {
	p := tx.Bucket(parent)
	if p == nil {
		return nil
	}
	return p.Bucket(name)
}

func (s *Store) listIndex(opt ListOptions, pick func(*bolt.Tx) *bolt.Bucket) ([]content.Post, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.Post
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := pick(tx)
		postsB := tx.Bucket(bPosts)
		if idx == nil || postsB == nil {
			return nil
		}

		skip := (opt.Page - 1) * opt.Size
		cur := idx.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromPublishedKey(k)
			if slug == "" {
				continue
			}
			v := postsB.Get([]byte(slug))
			if v == nil {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			var p content.Post
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			out = append(out, p)
			if len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

// Routes returns the stored dynamic routes in sorted order.
func (s *Store) Routes() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bRoutes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}
