package filesystem

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/go-git/go-billy/v5"
)

// Inspector fetches per-entry metadata and classifies failures
type Inspector struct {
	fs billy.Filesystem
}

// NewInspector creates a metadata inspector
func NewInspector(fs billy.Filesystem) *Inspector {
	return &Inspector{fs: fs}
}

// Stat follows symlinks. Failures come back as *models.ScanError whose kind is
// permission_denied, cloud_placeholder_unavailable or metadata_error.
func (i *Inspector) Stat(path string) (os.FileInfo, error) {
	info, err := i.fs.Stat(path)
	if err != nil {
		return nil, models.NewScanError(ClassifyMetadataError(err), "stat", path, err)
	}
	return info, nil
}

// ClassifyMetadataError maps a stat failure onto the error taxonomy
func ClassifyMetadataError(err error) models.Kind {
	switch {
	case IsCloudPlaceholder(err):
		return models.KindCloudPlaceholderUnavailable
	case errors.Is(err, iofs.ErrPermission):
		return models.KindPermissionDenied
	default:
		return models.KindMetadataError
	}
}

// IsCloudPlaceholder reports whether err means the file exists only as an
// unmaterialized cloud-sync placeholder
func IsCloudPlaceholder(err error) bool {
	return errors.Is(err, models.ErrCloudPlaceholder) || isCloudPlaceholderErrno(err)
}
