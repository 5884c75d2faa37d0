package index

var (
	bPosts      = []byte("posts")      // slug -> post json
	bCategories = []byte("categories") // slug -> category json
	bTags       = []byte("tags")       // slug -> tag json
	bRoutes     = []byte("routes")     // path -> {}
	bMeta       = []byte("meta")       // key -> value

	bIdxPublished = []byte("idx_published") // publishedKey -> 1
	bIdxTag       = []byte("idx_tag")       // tag id -> sub-bucket of publishedKey -> 1
	bIdxCat       = []byte("idx_cat")       // category id -> sub-bucket of publishedKey -> 1

	metaFingerprint = []byte("fingerprint")
)
