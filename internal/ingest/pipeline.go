package ingest

import (
	domainerr "blogdemo/internal/domain/errors"
	"sort"
)

// Ingest parses every source and returns them ordered by slug. Processing
// stops at the first failure; a duplicate slug names the later path.
func Ingest(sources []SourceFile) ([]ParsedSource, error) {
	sorted := make([]SourceFile, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	parsed := make([]ParsedSource, 0, len(sorted))
	for _, sf := range sorted {
		ps, err := ParseSource(sf)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, ps)
	}
	if len(parsed) == 0 {
		return nil, domainerr.New(domainerr.KindEmptyCorpus, "at least one markdown post is required")
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].FrontMatter.Slug < parsed[j].FrontMatter.Slug
	})

	seen := make(map[string]struct{}, len(parsed))
	for _, ps := range parsed {
		slug := ps.FrontMatter.Slug
		if _, ok := seen[slug]; ok {
			return nil, &domainerr.ContentError{
				Kind: domainerr.KindDuplicateSlug,
				Path: ps.Path,
				Key:  slug,
				Msg:  "duplicate post slug",
			}
		}
		seen[slug] = struct{}{}
	}
	return parsed, nil
}
