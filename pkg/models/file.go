package models

// ContentDigest is the lowercase hex SHA-256 of a file's full content
type ContentDigest string

// FileEntry is a direct child of the scan target
type FileEntry struct {
	Path  string // Path inside the scan filesystem (slash-rooted, e.g. "/a.txt")
	Name  string // Base name
	IsDir bool   // Directory entries are never hashed
	Size  int64  // Size reported by the listing
}

// Relocation records one duplicate handled during a scan
type Relocation struct {
	Digest           ContentDigest `json:"digest" yaml:"digest"`
	Source           string        `json:"source" yaml:"source"`                       // Entry whose bytes were copied to quarantine
	Destination      string        `json:"destination" yaml:"destination"`             // Path inside the quarantine directory
	Removed          string        `json:"removed" yaml:"removed"`                     // File deleted from the target
	ReferenceMissing bool          `json:"reference_missing" yaml:"reference_missing"` // Removed file was already gone
	Overwrote        bool          `json:"overwrote" yaml:"overwrote"`                 // Destination existed before the copy
	Size             int64         `json:"size" yaml:"size"`
}
