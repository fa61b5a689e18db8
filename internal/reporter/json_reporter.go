package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aleister1102/mirrorcheck/internal/digest"
	"github.com/aleister1102/mirrorcheck/internal/verifier"
	"github.com/rs/zerolog"
)

// MirrorEntry is one mirror in the JSON report
type MirrorEntry struct {
	Index     int    `json:"index"`
	URL       string `json:"url"`
	Host      string `json:"host"`
	Outcome   string `json:"outcome"`
	Reachable bool   `json:"reachable"`
	Fetched   bool   `json:"fetched"`
	Matched   bool   `json:"matched"`
	Bytes     int64  `json:"bytes"`
	Digest    string `json:"digest,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BaselineEntry is the baseline in the JSON report
type BaselineEntry struct {
	URL     string `json:"url"`
	Fetched bool   `json:"fetched"`
	Bytes   int64  `json:"bytes"`
	Digest  string `json:"digest,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Document is the JSON report layout
type Document struct {
	Version      int           `json:"version"`
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	DurationSecs float64       `json:"duration_seconds"`
	Algorithm    string        `json:"algorithm"`
	Canceled     bool          `json:"canceled"`
	Baseline     BaselineEntry `json:"baseline"`
	Mirrors      []MirrorEntry `json:"mirrors"`
	Summary      SummaryEntry  `json:"summary"`
	Removed      []string      `json:"removed_files"`
}

// SummaryEntry mirrors verifier.Summary with JSON names
type SummaryEntry struct {
	Total       int `json:"total"`
	Unreachable int `json:"unreachable"`
	FetchFailed int `json:"fetch_failed"`
	Match       int `json:"match"`
	Mismatch    int `json:"mismatch"`
	NotCompared int `json:"not_compared"`
	Skipped     int `json:"skipped"`
}

// NewDocument converts report into its JSON layout.
func NewDocument(report *verifier.Report) Document {
	s := report.Summary()
	doc := Document{
		Version:      ReportVersion,
		RunID:        report.RunID,
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
		DurationSecs: report.Duration().Seconds(),
		Algorithm:    string(report.Algorithm),
		Canceled:     report.Canceled,
		Baseline: BaselineEntry{
			URL:     report.Baseline.Endpoint.URL,
			Fetched: report.Baseline.Fetched,
			Bytes:   report.Baseline.Bytes,
			Digest:  digestHex(report.Baseline.Digest),
			Error:   errString(report.Baseline.Err),
		},
		Mirrors: make([]MirrorEntry, 0, len(report.Mirrors)),
		Summary: SummaryEntry{
			Total:       s.Total,
			Unreachable: s.Unreachable,
			FetchFailed: s.FetchFailed,
			Match:       s.Match,
			Mismatch:    s.Mismatch,
			NotCompared: s.NotCompared,
			Skipped:     s.Skipped,
		},
		Removed: append([]string{}, report.Cleanup.Removed...),
	}

	for _, m := range report.Mirrors {
		doc.Mirrors = append(doc.Mirrors, MirrorEntry{
			Index:     m.Endpoint.Index,
			URL:       m.Endpoint.URL,
			Host:      m.Endpoint.Host,
			Outcome:   string(m.Outcome),
			Reachable: m.Reachable,
			Fetched:   m.Fetched,
			Matched:   m.Matched,
			Bytes:     m.Bytes,
			Digest:    digestHex(m.Digest),
			Error:     errString(m.Err),
		})
	}
	return doc
}

// JSONReporter writes the run report as an indented JSON file.
type JSONReporter struct {
	dirs   *DirectoryManager
	logger zerolog.Logger
}

// NewJSONReporter creates a JSONReporter
func NewJSONReporter(logger zerolog.Logger) *JSONReporter {
	l := logger.With().Str("component", "JSONReporter").Logger()
	return &JSONReporter{
		dirs:   NewDirectoryManager(l),
		logger: l,
	}
}

// Write serializes report to path, replacing any previous file.
func (jr *JSONReporter) Write(report *verifier.Report, path string) error {
	if err := jr.dirs.EnsureParentDirectory(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(NewDocument(report), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), FilePermissions); err != nil {
		return fmt.Errorf("failed to write report '%s': %w", path, err)
	}

	jr.logger.Info().Str("path", path).Str("run_id", report.RunID).Msg("Report written")
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func digestHex(d digest.Digest) string {
	if d.IsZero() {
		return ""
	}
	return d.Hex()
}
