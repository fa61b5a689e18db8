// Package verifier runs the probe, fetch, compare and cleanup workflow over a mirror list.
package verifier

import (
	"context"
	"time"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/aleister1102/mirrorcheck/internal/digest"
	"github.com/aleister1102/mirrorcheck/internal/fetcher"
	"github.com/aleister1102/mirrorcheck/internal/probing"
	"github.com/aleister1102/mirrorcheck/internal/urlhandler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fetcher downloads a URL into a named local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, name string) (fetcher.LocalResource, error)
	PathFor(name string) string
}

// Digester computes the checksum of a local file.
type Digester interface {
	Digest(path string) (digest.Digest, error)
	Algorithm() digest.Algorithm
}

// Dependencies are the collaborators of a Pipeline
type Dependencies struct {
	Prober   probing.Prober
	Fetcher  Fetcher
	Digester Digester
	Files    *common.FileManager
	Logger   Logger
	// RunID identifies the run in logs and reports; generated when empty
	RunID string
}

// Pipeline verifies every mirror against the baseline, one mirror at a time.
type Pipeline struct {
	prober   probing.Prober
	fetcher  Fetcher
	digester Digester
	files    *common.FileManager
	logger   Logger
	runID    string
	now      func() time.Time
}

// NewPipeline checks deps and fills in defaults for the optional ones.
func NewPipeline(deps Dependencies) (*Pipeline, error) {
	if deps.Prober == nil {
		return nil, common.NewValidationError("prober", nil, "prober is required")
	}
	if deps.Fetcher == nil {
		return nil, common.NewValidationError("fetcher", nil, "fetcher is required")
	}
	if deps.Digester == nil {
		return nil, common.NewValidationError("digester", nil, "digester is required")
	}
	if deps.Files == nil {
		deps.Files = common.NewFileManager(zerolog.Nop())
	}
	if deps.Logger == nil {
		deps.Logger = NopLogger{}
	}
	if deps.RunID == "" {
		deps.RunID = uuid.New().String()
	}

	return &Pipeline{
		prober:   deps.Prober,
		fetcher:  deps.Fetcher,
		digester: deps.Digester,
		files:    deps.Files,
		logger:   deps.Logger,
		runID:    deps.RunID,
		now:      time.Now,
	}, nil
}

// RunID returns the identifier stamped on reports
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes one pass over targets. It never returns an error: every failure is
// recorded in the report. Local files are removed before Run returns, even when ctx
// is canceled part way.
func (p *Pipeline) Run(ctx context.Context, targets *urlhandler.Targets) *Report {
	report := &Report{
		RunID:     p.runID,
		StartedAt: p.now(),
		Algorithm: p.digester.Algorithm(),
		Baseline:  BaselineResult{Endpoint: targets.Baseline},
		Mirrors:   make([]MirrorResult, 0, len(targets.Mirrors)),
	}

	var owned []string
	defer func() {
		report.Cleanup = p.cleanup(owned)
		report.Canceled = ctx.Err() != nil
		report.FinishedAt = p.now()
		s := report.Summary()
		p.logger.Info("Run finished",
			F("run_id", report.RunID),
			F("mirrors", s.Total),
			F("match", s.Match),
			F("mismatch", s.Mismatch),
			F("unreachable", s.Unreachable),
			F("fetch_failed", s.FetchFailed),
			F("canceled", report.Canceled))
	}()

	p.logger.Info("Run started", F("run_id", p.runID), F("mirrors", len(targets.Mirrors)), F("path", targets.Path))

	for _, ep := range targets.Mirrors {
		result, path := p.probeAndFetch(ctx, ep)
		if path != "" {
			owned = append(owned, path)
		}
		report.Mirrors = append(report.Mirrors, result)
	}

	if path := p.fetchBaseline(ctx, &report.Baseline); path != "" {
		owned = append(owned, path)
	}

	p.compare(ctx, report)
	return report
}

// probeAndFetch returns the result for ep and the local path it may have written.
func (p *Pipeline) probeAndFetch(ctx context.Context, ep urlhandler.Endpoint) (MirrorResult, string) {
	result := MirrorResult{Endpoint: ep}

	if err := ctx.Err(); err != nil {
		result.Outcome = OutcomeSkipped
		result.Err = err
		return result, ""
	}

	if !p.prober.Probe(ctx, ep.Host) {
		result.Outcome = OutcomeUnreachable
		p.logger.Info("Mirror unreachable", F("index", ep.Index), F("host", ep.Host))
		return result, ""
	}
	result.Reachable = true
	p.logger.Info("Mirror reachable, downloading", F("index", ep.Index), F("host", ep.Host), F("url", ep.URL))

	name := ep.LocalName()
	path := p.fetcher.PathFor(name)
	local, err := p.fetcher.Fetch(ctx, ep.URL, name)
	if err != nil {
		result.Outcome = OutcomeFetchFailed
		result.Err = err
		p.logger.Error("Mirror download failed", err, F("index", ep.Index), F("host", ep.Host))
		return result, path
	}

	result.Fetched = true
	result.Outcome = OutcomeNotCompared
	result.LocalPath = local.Path
	result.Bytes = local.Size
	return result, path
}

func (p *Pipeline) fetchBaseline(ctx context.Context, baseline *BaselineResult) string {
	if err := ctx.Err(); err != nil {
		baseline.Err = err
		return ""
	}

	p.logger.Info("Downloading baseline", F("url", baseline.Endpoint.URL))

	name := baseline.Endpoint.LocalName()
	path := p.fetcher.PathFor(name)
	local, err := p.fetcher.Fetch(ctx, baseline.Endpoint.URL, name)
	if err != nil {
		baseline.Err = err
		p.logger.Error("Baseline download failed, skipping comparison", err, F("url", baseline.Endpoint.URL))
		return path
	}

	baseline.Fetched = true
	baseline.LocalPath = local.Path
	baseline.Bytes = local.Size
	return path
}

func (p *Pipeline) compare(ctx context.Context, report *Report) {
	baseline := &report.Baseline
	if !baseline.Fetched {
		return
	}

	sum, err := p.digester.Digest(baseline.LocalPath)
	if err != nil {
		baseline.Err = err
		p.logger.Error("Baseline digest failed, skipping comparison", err, F("path", baseline.LocalPath))
		return
	}
	baseline.Digest = sum
	p.logger.Info("Baseline digest", F("digest", sum.Hex()), F("algorithm", string(sum.Algorithm)))

	for i := range report.Mirrors {
		m := &report.Mirrors[i]
		if !m.Fetched || !p.files.FileExists(m.LocalPath) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		sum, err := p.digester.Digest(m.LocalPath)
		if err != nil {
			m.Outcome = OutcomeFetchFailed
			m.Err = err
			p.logger.Error("Mirror digest failed", err, F("index", m.Endpoint.Index), F("host", m.Endpoint.Host))
			continue
		}

		m.Digest = sum
		m.Matched = sum.Equal(baseline.Digest)
		if m.Matched {
			m.Outcome = OutcomeDigestMatch
			p.logger.Info("Digest matches baseline", F("index", m.Endpoint.Index), F("host", m.Endpoint.Host), F("digest", sum.Hex()))
		} else {
			m.Outcome = OutcomeDigestMismatch
			p.logger.Info("Digest differs from baseline", F("index", m.Endpoint.Index), F("host", m.Endpoint.Host), F("digest", sum.Hex()), F("baseline", baseline.Digest.Hex()))
		}
	}
}

func (p *Pipeline) cleanup(paths []string) CleanupResult {
	var result CleanupResult
	var collector common.ErrorCollector
	for _, path := range paths {
		removed, err := p.files.RemoveIfExists(path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			collector.AddWithContext(err, path)
			continue
		}
		if removed {
			result.Removed = append(result.Removed, path)
		}
	}
	if collector.HasErrors() {
		p.logger.Error("Failed to remove local files", collector.Error(), F("failed", len(result.Errors)))
	}
	p.logger.Info("Cleanup finished", F("removed", len(result.Removed)))
	return result
}
