package build

import "testing"

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := ComputeFingerprint([]Source{{Path: "a.md", Contents: "1"}, {Path: "b.md", Contents: "2"}})
	b := ComputeFingerprint([]Source{{Path: "b.md", Contents: "2"}, {Path: "a.md", Contents: "1"}})
	if a != b {
		t.Fatalf("fingerprints differ: %s vs %s", a.ContentHash, b.ContentHash)
	}
	if a.Files != 2 || len(a.Short()) != 12 {
		t.Fatalf("fingerprint = %+v", a)
	}

	// moving content between files must change the hash
	c := ComputeFingerprint([]Source{{Path: "a.md", Contents: "12"}, {Path: "b.md", Contents: ""}})
	if c.ContentHash == a.ContentHash {
		t.Fatal("hash should depend on file boundaries")
	}
}
