package organizer

import "time"

// CopyStatus is the settled state of one classifying copy.
type CopyStatus string

// Copy status constants
const (
	StatusCopied  CopyStatus = "COPIED"  // File landed in its extension folder
	StatusSkipped CopyStatus = "SKIPPED" // Extension not in the allowed set
	StatusFailed  CopyStatus = "FAILED"  // Folder creation or copy failed
)

// CopyOutcome is the per-file result of the copy stage.
type CopyOutcome struct {
	Source      string        // Source file path
	Destination string        // Target path; empty when skipped
	Extension   string        // Lowercase extension or NoExtension
	Status      CopyStatus    // COPIED, SKIPPED or FAILED
	Bytes       int64         // Bytes written for copied files
	Duration    time.Duration // Time spent on this file
	Err         error         // Set only for FAILED
}

// ExtensionTotals aggregates outcomes for one extension.
type ExtensionTotals struct {
	Extension string
	Copied    int
	Skipped   int
	Failed    int
	Bytes     int64
}
