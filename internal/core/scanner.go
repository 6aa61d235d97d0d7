package core

import (
	"errors"
	"fmt"

	"github.com/IvanShishkin/dewabbit/internal/config"
	"github.com/IvanShishkin/dewabbit/internal/filesystem"
	"github.com/IvanShishkin/dewabbit/pkg/models"
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// Version is stamped into scan results
const Version = "0.1.0"

// Progress phases
const (
	PhaseEnumerated = "enumerated"
	PhaseProcessing = "processing"
	PhaseRelocated  = "relocated"
	PhaseComplete   = "complete"
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// FilesystemFactory opens a filesystem rooted at the scan target
type FilesystemFactory func(target string) billy.Filesystem

// Option configures a Scanner
type Option func(*Scanner)

// WithFilesystemFactory replaces the OS-backed filesystem
func WithFilesystemFactory(f FilesystemFactory) Option {
	return func(s *Scanner) {
		s.openFS = f
	}
}

// Scanner drives enumeration, hashing, indexing and relocation for one
// directory at a time. Scans are sequential and fail fast.
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	openFS           FilesystemFactory
	policy           Policy
	progressCallback ProgressCallback

	// Per-scan state
	index      *DuplicateIndex
	enumerator *filesystem.Enumerator
	inspector  *filesystem.Inspector
	hasher     *filesystem.Hasher
	relocator  *filesystem.Relocator
	results    *models.ScanResults
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		config: cfg,
		logger: logger,
		openFS: filesystem.OpenTarget,
		policy: NewPolicy(cfg.GetPolicy()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// Scan deduplicates the direct children of target. The returned results are
// never nil; the error is the first fatal *models.ScanError, if any.
func (s *Scanner) Scan(target string) (*models.ScanResults, error) {
	s.index = nil
	s.results = models.NewScanResults(target)
	s.results.Policy = s.policy.Name()
	s.results.Version = Version

	if target == "" {
		s.logger.Warn("No target directory selected")
		s.results.Fail(models.NewScanError(models.KindNoTargetSelected, "", "", nil))
		return s.finish()
	}

	s.logger.Info("Starting scan",
		zap.String("path", target),
		zap.String("policy", s.policy.Name()))

	fs := s.openFS(target)
	if err := s.checkTarget(fs, target); err != nil {
		s.results.Fail(err)
		return s.finish()
	}

	s.index = NewDuplicateIndex()
	s.enumerator = filesystem.NewEnumerator(fs, s.logger)
	s.inspector = filesystem.NewInspector(fs)
	s.hasher = filesystem.NewHasher(fs)
	s.relocator = filesystem.NewRelocator(fs, s.logger)

	// Quarantine exists before enumeration and therefore shows up as an entry
	if err := s.relocator.EnsureQuarantine(); err != nil {
		s.results.Fail(asScanError(err))
		return s.finish()
	}

	entries, err := s.enumerator.List()
	if err != nil {
		s.results.Fail(asScanError(err))
		return s.finish()
	}
	s.results.TotalEntries = len(entries)
	s.reportProgress(PhaseEnumerated, 0, len(entries), fmt.Sprintf("Found %d entries", len(entries)))

	for i, entry := range entries {
		if err := s.processEntry(entry); err != nil {
			s.results.Fail(asScanError(err))
			break
		}
		s.reportProgress(PhaseProcessing, i+1, len(entries), entry.Path)
	}

	return s.finish()
}

// checkTarget requires the filesystem root to be an existing directory
func (s *Scanner) checkTarget(fs billy.Filesystem, target string) *models.ScanError {
	info, err := fs.Stat(filesystem.Root)
	if err != nil {
		return models.NewScanError(models.KindInvalidTarget, "stat", target, err)
	}
	if !info.IsDir() {
		return models.NewScanError(models.KindInvalidTarget, "stat", target, fmt.Errorf("%s is not a directory", target))
	}
	return nil
}

// processEntry handles one enumerated entry. A non-nil error is fatal.
func (s *Scanner) processEntry(entry models.FileEntry) error {
	s.logger.Debug("Visiting entry", zap.String("path", entry.Path))

	if entry.IsDir {
		s.results.SkippedDirs++
		return nil
	}

	info, err := s.inspector.Stat(entry.Path)
	if err != nil {
		if models.KindOf(err) == models.KindPermissionDenied {
			s.logger.Debug("Permission denied, skipping", zap.String("path", entry.Path))
			s.results.SkippedDenied++
			return nil
		}
		return err
	}
	if info.IsDir() {
		s.results.SkippedDirs++
		return nil
	}

	digest, err := s.hasher.Hash(entry.Path)
	if err != nil {
		return err
	}
	s.results.ScannedFiles++

	reference, seen := s.index.Lookup(digest)
	if !seen {
		s.index.Register(digest, entry.Path)
		return nil
	}

	rel, err := s.policy.Relocate(s.relocator, entry, reference, digest)
	if err != nil {
		return err
	}
	s.results.AddRelocation(rel)

	s.logger.Info("Relocated duplicate",
		zap.String("digest", string(digest)),
		zap.String("source", rel.Source),
		zap.String("destination", rel.Destination),
		zap.String("removed", rel.Removed),
		zap.Bool("reference_missing", rel.ReferenceMissing),
		zap.Bool("overwrote", rel.Overwrote))
	s.reportProgress(PhaseRelocated, len(s.results.Relocations), 0, rel.Destination)

	return nil
}

// finish stamps the results and converts the outcome into a return pair
func (s *Scanner) finish() (*models.ScanResults, error) {
	results := s.results
	if s.index != nil {
		results.UniqueDigests = s.index.Len()
	}
	results.Finish()

	if results.Err != nil {
		s.logger.Warn("Scan aborted",
			zap.String("status", string(results.Status)),
			zap.Error(results.Err))
		return results, results.Err
	}

	s.reportProgress(PhaseComplete, results.TotalEntries, results.TotalEntries, "Scan complete")
	s.logger.Info("Scan completed",
		zap.Duration("duration", results.Duration),
		zap.Int("files_scanned", results.ScannedFiles),
		zap.Int("relocated", len(results.Relocations)))
	return results, nil
}

// asScanError classifies err, treating anything unclassified as an io_error
func asScanError(err error) *models.ScanError {
	var se *models.ScanError
	if errors.As(err, &se) {
		return se
	}
	return models.NewScanError(models.KindIOError, "", "", err)
}
