package models

import (
	"errors"
	"fmt"
)

// Kind classifies the terminal status of a scan or a per-entry condition
type Kind string

const (
	KindSuccess                     Kind = "success"
	KindNoTargetSelected            Kind = "no_target_selected"
	KindInvalidTarget               Kind = "invalid_target"
	KindPermissionDenied            Kind = "permission_denied"
	KindCloudPlaceholderUnavailable Kind = "cloud_placeholder_unavailable"
	KindMetadataError               Kind = "metadata_error"
	KindIOError                     Kind = "io_error"
)

// Sentinels usable with errors.Is against any *ScanError of the same kind
var (
	ErrNoTargetSelected = errors.New("no target directory selected")
	ErrInvalidTarget    = errors.New("target is not an accessible directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCloudPlaceholder = errors.New("cloud file provider is not running")
	ErrMetadata         = errors.New("metadata unavailable")
	ErrIO               = errors.New("i/o failure")

	// ErrQuarantineNotDir is wrapped when the quarantine path exists as a regular file
	ErrQuarantineNotDir = errors.New("quarantine path exists and is not a directory")
)

var kindSentinels = map[Kind]error{
	KindNoTargetSelected:            ErrNoTargetSelected,
	KindInvalidTarget:               ErrInvalidTarget,
	KindPermissionDenied:            ErrPermissionDenied,
	KindCloudPlaceholderUnavailable: ErrCloudPlaceholder,
	KindMetadataError:               ErrMetadata,
	KindIOError:                     ErrIO,
}

// ScanError is a classified failure carrying the operation and path involved
type ScanError struct {
	Kind Kind
	Op   string // stat, read, copy, remove, mkdir, readdir
	Path string
	Err  error
}

// NewScanError creates a classified error
func NewScanError(kind Kind, op, path string, err error) *ScanError {
	return &ScanError{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *ScanError) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *ScanError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// Fatal reports whether the kind aborts a scan
func (k Kind) Fatal() bool {
	switch k {
	case KindSuccess, KindPermissionDenied:
		return false
	default:
		return true
	}
}

// KindOf returns the kind of a classified error, KindSuccess for nil and
// KindIOError for anything unclassified
func KindOf(err error) Kind {
	if err == nil {
		return KindSuccess
	}
	var se *ScanError
	if errors.As(err, &se) {
		return se.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindIOError
}
