package filesystem

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Hasher computes content digests
type Hasher struct {
	fs billy.Filesystem
}

// NewHasher creates a hasher reading through fs
func NewHasher(fs billy.Filesystem) *Hasher {
	return &Hasher{fs: fs}
}

// Hash reads the whole file and returns its digest
func (h *Hasher) Hash(path string) (models.ContentDigest, error) {
	content, err := util.ReadFile(h.fs, path)
	if err != nil {
		return "", models.NewScanError(models.KindIOError, "read", path, err)
	}
	return HashBytes(content), nil
}

// HashBytes calculates the SHA-256 digest of content
func HashBytes(content []byte) models.ContentDigest {
	sum := sha256.Sum256(content)
	return models.ContentDigest(hex.EncodeToString(sum[:]))
}
