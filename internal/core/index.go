package core

import "github.com/IvanShishkin/dewabbit/pkg/models"

// DuplicateIndex maps a digest to the first file seen with it. Entries are
// written once and never corrected, even after the referenced file is removed.
type DuplicateIndex struct {
	refs map[models.ContentDigest]string
}

// NewDuplicateIndex creates an empty index
func NewDuplicateIndex() *DuplicateIndex {
	return &DuplicateIndex{refs: make(map[models.ContentDigest]string)}
}

// Lookup returns the reference path recorded for digest
func (i *DuplicateIndex) Lookup(digest models.ContentDigest) (string, bool) {
	path, ok := i.refs[digest]
	return path, ok
}

// Register records path for digest unless the digest is already present.
// It reports whether the entry was inserted.
func (i *DuplicateIndex) Register(digest models.ContentDigest, path string) bool {
	if _, ok := i.refs[digest]; ok {
		return false
	}
	i.refs[digest] = path
	return true
}

// Len returns the number of distinct digests seen
func (i *DuplicateIndex) Len() int {
	return len(i.refs)
}
