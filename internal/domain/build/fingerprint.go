package build

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Fingerprint identifies a corpus by the content of its sources.
type Fingerprint struct {
	Files       int
	ContentHash string
}

type Source struct {
	Path     string
	Contents string
}

// ComputeFingerprint hashes path and contents of every source in path order,
// so the result does not depend on discovery order.
func ComputeFingerprint(sources []Source) Fingerprint {
	sorted := make([]Source, len(sources))
	copy(sorted, sources)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	h := sha256.New()
	for _, s := range sorted {
		h.Write([]byte(s.Path))
		h.Write([]byte{0})
		h.Write([]byte(s.Contents))
		h.Write([]byte{0})
	}
	return Fingerprint{
		Files:       len(sorted),
		ContentHash: hex.EncodeToString(h.Sum(nil)),
	}
}

func (f Fingerprint) Short() string {
	if len(f.ContentHash) < 12 {
		return f.ContentHash
	}
	return f.ContentHash[:12]
}
