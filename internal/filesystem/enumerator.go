package filesystem

import (
	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// Root is the scan target as seen from inside its own filesystem
const Root = "/"

// Enumerator lists the direct children of the scan target
type Enumerator struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewEnumerator creates an enumerator over a filesystem rooted at the target
func NewEnumerator(fs billy.Filesystem, logger *zap.Logger) *Enumerator {
	return &Enumerator{
		fs:     fs,
		logger: logger,
	}
}

// List returns every direct child in the order the filesystem reports them.
// Directories are included and flagged.
func (e *Enumerator) List() ([]models.FileEntry, error) {
	infos, err := e.fs.ReadDir(Root)
	if err != nil {
		return nil, models.NewScanError(models.KindIOError, "readdir", Root, err)
	}

	entries := make([]models.FileEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, models.FileEntry{
			Path:  e.fs.Join(Root, info.Name()),
			Name:  info.Name(),
			IsDir: info.IsDir(),
			Size:  info.Size(),
		})
	}

	e.logger.Debug("Enumerated target", zap.Int("entries", len(entries)))
	return entries, nil
}
