package verifier

import (
	"time"

	"github.com/aleister1102/mirrorcheck/internal/digest"
	"github.com/aleister1102/mirrorcheck/internal/urlhandler"
)

// Outcome is the verdict for one mirror
type Outcome string

const (
	OutcomeUnreachable    Outcome = "unreachable"
	OutcomeFetchFailed    Outcome = "fetch-failed"
	OutcomeDigestMatch    Outcome = "digest-match"
	OutcomeDigestMismatch Outcome = "digest-mismatch"
	// OutcomeNotCompared marks a fetched mirror that had no baseline digest to compare against
	OutcomeNotCompared Outcome = "not-compared"
	// OutcomeSkipped marks a mirror the run never reached because it was canceled
	OutcomeSkipped Outcome = "skipped"
)

// MirrorResult is what happened to one mirror during a run.
type MirrorResult struct {
	Endpoint  urlhandler.Endpoint
	Reachable bool
	Fetched   bool
	Matched   bool
	Outcome   Outcome
	Bytes     int64
	Digest    digest.Digest
	LocalPath string
	Err       error
}

// BaselineResult describes the canonical copy.
type BaselineResult struct {
	Endpoint  urlhandler.Endpoint
	Fetched   bool
	Bytes     int64
	Digest    digest.Digest
	LocalPath string
	Err       error
}

// CleanupResult lists the local files removed at the end of a run.
type CleanupResult struct {
	Removed []string
	Errors  []error
}

// Report is the full outcome of one pipeline run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Algorithm  digest.Algorithm
	Baseline   BaselineResult
	Mirrors    []MirrorResult
	Cleanup    CleanupResult
	Canceled   bool
}

// Summary counts mirrors per outcome
type Summary struct {
	Total       int
	Unreachable int
	FetchFailed int
	Match       int
	Mismatch    int
	NotCompared int
	Skipped     int
}

// Summary tallies the mirror outcomes of r.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Mirrors)}
	for _, m := range r.Mirrors {
		switch m.Outcome {
		case OutcomeUnreachable:
			s.Unreachable++
		case OutcomeFetchFailed:
			s.FetchFailed++
		case OutcomeDigestMatch:
			s.Match++
		case OutcomeDigestMismatch:
			s.Mismatch++
		case OutcomeNotCompared:
			s.NotCompared++
		case OutcomeSkipped:
			s.Skipped++
		}
	}
	return s
}

// Duration is the wall time of the run
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
