package models

import "time"

// ScanResults is the terminal outcome of one scan
type ScanResults struct {
	// Summary
	Status    Kind          `json:"status" yaml:"status"`
	Err       *ScanError    `json:"-" yaml:"-"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	ScanPath  string        `json:"scan_path" yaml:"scan_path"`
	Policy    string        `json:"policy" yaml:"policy"`
	Version   string        `json:"version" yaml:"version"`

	// Counters reached before completion or the first fatal condition
	TotalEntries  int   `json:"total_entries" yaml:"total_entries"`
	ScannedFiles  int   `json:"scanned_files" yaml:"scanned_files"`
	SkippedDirs   int   `json:"skipped_dirs" yaml:"skipped_dirs"`
	SkippedDenied int   `json:"skipped_denied" yaml:"skipped_denied"`
	UniqueDigests int   `json:"unique_digests" yaml:"unique_digests"`
	RelocatedSize int64 `json:"relocated_bytes" yaml:"relocated_bytes"`

	Relocations []*Relocation `json:"relocations" yaml:"relocations"`

	// Report path
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// NewScanResults returns results for a scan that has not finished yet
func NewScanResults(path string) *ScanResults {
	return &ScanResults{
		Status:      KindSuccess,
		ScanPath:    path,
		StartTime:   time.Now(),
		Relocations: []*Relocation{},
	}
}

// AddRelocation appends a relocation and updates byte statistics
func (r *ScanResults) AddRelocation(rel *Relocation) {
	r.Relocations = append(r.Relocations, rel)
	r.RelocatedSize += rel.Size
}

// Fail records the first fatal condition. Later calls are ignored.
func (r *ScanResults) Fail(err *ScanError) {
	if r.Err != nil || err == nil {
		return
	}
	r.Err = err
	r.Status = err.Kind
	r.Error = err.Error()
}

// Finish stamps the end time and duration
func (r *ScanResults) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Succeeded reports whether the scan ran to completion
func (r *ScanResults) Succeeded() bool {
	return r.Status == KindSuccess
}
