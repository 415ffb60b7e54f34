package organizer

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/organizer/internal/filelock"
)

// Report collects everything one pipeline run did. Stage errors are
// *OpError values; per-file results are in Outcomes in scan order.
type Report struct {
	RunID         string
	Source        string
	Output        string
	StartedAt     time.Time
	Duration      time.Duration
	PrepareErrors []error
	SeedErrors    []error
	ScanErrors    []error
	Discovered    int
	Outcomes      []CopyOutcome
}

// StageErrors returns all non-copy errors in stage order.
func (r *Report) StageErrors() []error {
	var errs []error
	errs = append(errs, r.PrepareErrors...)
	errs = append(errs, r.SeedErrors...)
	errs = append(errs, r.ScanErrors...)
	return errs
}

// Count returns the number of outcomes with the given status.
func (r *Report) Count(status CopyStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes.
func (r *Report) Failures() []CopyOutcome {
	var failed []CopyOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// TotalBytes returns the number of bytes written by successful copies.
func (r *Report) TotalBytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		total += o.Bytes
	}
	return total
}

// ByExtension aggregates outcomes per extension, sorted by extension.
func (r *Report) ByExtension() []ExtensionTotals {
	index := make(map[string]*ExtensionTotals)
	for _, o := range r.Outcomes {
		t, ok := index[o.Extension]
		if !ok {
			t = &ExtensionTotals{Extension: o.Extension}
			index[o.Extension] = t
		}
		switch o.Status {
		case StatusCopied:
			t.Copied++
			t.Bytes += o.Bytes
		case StatusSkipped:
			t.Skipped++
		case StatusFailed:
			t.Failed++
		}
	}

	totals := make([]ExtensionTotals, 0, len(index))
	for _, t := range index {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Extension < totals[j].Extension
	})
	return totals
}

type reportFile struct {
	RunID       string           `yaml:"run_id"`
	Source      string           `yaml:"source"`
	Output      string           `yaml:"output"`
	StartedAt   string           `yaml:"started_at"`
	Duration    string           `yaml:"duration"`
	Discovered  int              `yaml:"discovered"`
	Copied      int              `yaml:"copied"`
	Skipped     int              `yaml:"skipped"`
	Failed      int              `yaml:"failed"`
	Bytes       int64            `yaml:"bytes"`
	StageErrors []string         `yaml:"stage_errors,omitempty"`
	Extensions  []extensionEntry `yaml:"extensions"`
	Failures    []failureEntry   `yaml:"failures,omitempty"`
}

type extensionEntry struct {
	Extension string `yaml:"extension"`
	Copied    int    `yaml:"copied"`
	Skipped   int    `yaml:"skipped"`
	Failed    int    `yaml:"failed"`
	Bytes     int64  `yaml:"bytes"`
}

type failureEntry struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination,omitempty"`
	Error       string `yaml:"error"`
}

// YAML encodes the report summary as a YAML document.
func (r *Report) YAML() ([]byte, error) {
	doc := reportFile{
		RunID:      r.RunID,
		Source:     r.Source,
		Output:     r.Output,
		StartedAt:  r.StartedAt.Format(time.RFC3339),
		Duration:   r.Duration.Round(time.Millisecond).String(),
		Discovered: r.Discovered,
		Copied:     r.Count(StatusCopied),
		Skipped:    r.Count(StatusSkipped),
		Failed:     r.Count(StatusFailed),
		Bytes:      r.TotalBytes(),
	}
	for _, err := range r.StageErrors() {
		doc.StageErrors = append(doc.StageErrors, err.Error())
	}
	for _, t := range r.ByExtension() {
		doc.Extensions = append(doc.Extensions, extensionEntry(t))
	}
	for _, o := range r.Failures() {
		doc.Failures = append(doc.Failures, failureEntry{
			Source:      o.Source,
			Destination: o.Destination,
			Error:       o.Err.Error(),
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteReport atomically writes the YAML form of r to path.
func WriteReport(path string, r *Report) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	return filelock.LockAndWrite(path, data)
}
