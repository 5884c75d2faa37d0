package index

import (
	"blogdemo/internal/domain/content"
	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

// Rebuild replaces the stored index with the contents of snap in a single
// transaction. fingerprint is recorded as-is under the meta bucket.
func (s *Store) Rebuild(snap *Snapshot, fingerprint string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bPosts, bCategories, bTags, bRoutes, bMeta, bIdxPublished, bIdxTag, bIdxCat} {
			_ = tx.DeleteBucket(name)
		}

		postsB, _ := tx.CreateBucket(bPosts)
		catsB, _ := tx.CreateBucket(bCategories)
		tagsB, _ := tx.CreateBucket(bTags)
		routesB, _ := tx.CreateBucket(bRoutes)
		metaB, _ := tx.CreateBucket(bMeta)

		idxPublishedB, _ := tx.CreateBucket(bIdxPublished)
		idxTagB, _ := tx.CreateBucket(bIdxTag)
		idxCatB, _ := tx.CreateBucket(bIdxCat)

		for _, p := range snap.posts {
			pb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := postsB.Put([]byte(p.Slug), pb); err != nil {
				return err
			}

			key := makePublishedKey(p.DisplayTime(), p.Slug)
			if err := idxPublishedB.Put(key, []byte{1}); err != nil {
				return err
			}

			for _, t := range p.Tags {
				sb, err := idxTagB.CreateBucketIfNotExists(idKey(t.ID))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			sb, err := idxCatB.CreateBucketIfNotExists(idKey(p.Category.ID))
			if err != nil {
				return err
			}
			if err := sb.Put(key, []byte{1}); err != nil {
				return err
			}
		}

		for _, c := range snap.categories {
			if err := putJSON(catsB, c.Slug, c); err != nil {
				return err
			}
		}
		for _, t := range snap.tags {
			if err := putJSON(tagsB, t.Slug, t); err != nil {
				return err
			}
		}
		for _, r := range snap.routes {
			if err := routesB.Put([]byte(r), []byte{1}); err != nil {
				return err
			}
		}
		return metaB.Put(metaFingerprint, []byte(fingerprint))
	})
}

func putJSON[T content.Category | content.Tag](b *bolt.Bucket, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), raw)
}
