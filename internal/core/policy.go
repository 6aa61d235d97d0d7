package core

import (
	"github.com/IvanShishkin/dewabbit/internal/config"
	"github.com/IvanShishkin/dewabbit/pkg/models"
)

// Relocator performs the filesystem mutations a policy asks for
type Relocator interface {
	Destination(name string) string
	Exists(path string) bool
	Copy(src, dst string) (int64, error)
	Remove(path string) (missing bool, err error)
}

// Policy decides what to do with an entry whose digest is already indexed
type Policy interface {
	Name() string
	Relocate(r Relocator, entry models.FileEntry, reference string, digest models.ContentDigest) (*models.Relocation, error)
}

// NewPolicy returns the policy selected by cfg
func NewPolicy(p config.RelocationPolicy) Policy {
	if p == config.PolicyKeepFirst {
		return keepFirstPolicy{}
	}
	return literalPolicy{}
}

// literalPolicy copies the current entry into quarantine, leaves it where it
// is, then deletes the earlier reference
type literalPolicy struct{}

func (literalPolicy) Name() string { return config.PolicyNameLiteral }

func (literalPolicy) Relocate(r Relocator, entry models.FileEntry, reference string, digest models.ContentDigest) (*models.Relocation, error) {
	return copyThenRemove(r, entry, reference, digest)
}

// keepFirstPolicy leaves the reference alone and moves the current entry
// into quarantine
type keepFirstPolicy struct{}

func (keepFirstPolicy) Name() string { return config.PolicyNameKeepFirst }

func (keepFirstPolicy) Relocate(r Relocator, entry models.FileEntry, _ string, digest models.ContentDigest) (*models.Relocation, error) {
	return copyThenRemove(r, entry, entry.Path, digest)
}

// copyThenRemove copies entry into quarantine and then removes victim. A
// failed copy skips the remove; a failed remove leaves the copy in place.
func copyThenRemove(r Relocator, entry models.FileEntry, victim string, digest models.ContentDigest) (*models.Relocation, error) {
	dest := r.Destination(entry.Name)
	overwrote := r.Exists(dest)

	written, err := r.Copy(entry.Path, dest)
	if err != nil {
		return nil, err
	}

	missing, err := r.Remove(victim)
	if err != nil {
		return nil, err
	}

	return &models.Relocation{
		Digest:           digest,
		Source:           entry.Path,
		Destination:      dest,
		Removed:          victim,
		ReferenceMissing: missing,
		Overwrote:        overwrote,
		Size:             written,
	}, nil
}
