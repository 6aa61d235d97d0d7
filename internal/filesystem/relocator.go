package filesystem

import (
	"errors"
	"io"
	"os"

	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// QuarantineDirName is the fixed subdirectory collecting relocated duplicates
const QuarantineDirName = "dupes"

// Relocator owns the quarantine directory and the copy/delete mutations.
// Copy and Remove are independent steps; nothing is rolled back.
type Relocator struct {
	fs     billy.Filesystem
	logger *zap.Logger
	dir    string
}

// NewRelocator creates a relocator for the quarantine directory under fs's root
func NewRelocator(fs billy.Filesystem, logger *zap.Logger) *Relocator {
	return &Relocator{
		fs:     fs,
		logger: logger,
		dir:    fs.Join(Root, QuarantineDirName),
	}
}

// Dir returns the quarantine directory path
func (r *Relocator) Dir() string {
	return r.dir
}

// EnsureQuarantine creates the quarantine directory if absent. An existing
// directory is left alone; an existing non-directory is an io_error.
func (r *Relocator) EnsureQuarantine() error {
	info, err := r.fs.Stat(r.dir)
	switch {
	case err == nil && info.IsDir():
		r.logger.Debug("Quarantine directory already present", zap.String("path", r.dir))
		return nil
	case err == nil:
		return models.NewScanError(models.KindIOError, "mkdir", r.dir, models.ErrQuarantineNotDir)
	case !errors.Is(err, os.ErrNotExist):
		return models.NewScanError(models.KindIOError, "mkdir", r.dir, err)
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return models.NewScanError(models.KindIOError, "mkdir", r.dir, err)
	}
	r.logger.Debug("Created quarantine directory", zap.String("path", r.dir))
	return nil
}

// Destination returns the quarantine path for a file name
func (r *Relocator) Destination(name string) string {
	return r.fs.Join(r.dir, name)
}

// Exists reports whether path is present
func (r *Relocator) Exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}

// Copy copies src to dst, silently overwriting dst
func (r *Relocator) Copy(src, dst string) (int64, error) {
	sourceFile, err := r.fs.Open(src)
	if err != nil {
		return 0, models.NewScanError(models.KindIOError, "copy", src, err)
	}
	defer sourceFile.Close()

	destFile, err := r.fs.Create(dst)
	if err != nil {
		return 0, models.NewScanError(models.KindIOError, "copy", dst, err)
	}

	written, err := io.Copy(destFile, sourceFile)
	if err != nil {
		destFile.Close()
		return written, models.NewScanError(models.KindIOError, "copy", dst, err)
	}
	if err := destFile.Close(); err != nil {
		return written, models.NewScanError(models.KindIOError, "copy", dst, err)
	}

	r.logger.Debug("Copied to quarantine",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.Int64("bytes", written))
	return written, nil
}

// Remove deletes path. A file that is already gone is not an error;
// missing reports that case.
func (r *Relocator) Remove(path string) (missing bool, err error) {
	if err := r.fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("Remove target already gone", zap.String("path", path))
			return true, nil
		}
		return false, models.NewScanError(models.KindIOError, "remove", path, err)
	}
	r.logger.Debug("Removed", zap.String("path", path))
	return false, nil
}
