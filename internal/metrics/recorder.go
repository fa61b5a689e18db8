// Package metrics exports run results as Prometheus gauges for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/aleister1102/mirrorcheck/internal/verifier"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the gauges for one run in a private registry.
type Recorder struct {
	namespace string
	registry  *prometheus.Registry

	mirrorUp      *prometheus.GaugeVec
	mirrorMatch   *prometheus.GaugeVec
	mirrorBytes   *prometheus.GaugeVec
	outcomes      *prometheus.GaugeVec
	baselineUp    prometheus.Gauge
	runDuration   prometheus.Gauge
	lastRunTime   prometheus.Gauge
	cleanupErrors prometheus.Gauge
}

// NewRecorder creates a Recorder whose metric names start with namespace.
func NewRecorder(namespace string) (*Recorder, error) {
	if namespace == "" {
		namespace = "mirrorcheck"
	}

	r := &Recorder{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		mirrorUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mirror_reachable",
			Help:      "1 if the mirror answered the reachability probe.",
		}, []string{"index", "host"}),
		mirrorMatch: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mirror_digest_match",
			Help:      "1 if the mirror copy matched the baseline digest.",
		}, []string{"index", "host"}),
		mirrorBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mirror_fetched_bytes",
			Help:      "Bytes downloaded from the mirror.",
		}, []string{"index", "host"}),
		outcomes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mirrors",
			Help:      "Number of mirrors per outcome in the last run.",
		}, []string{"outcome"}),
		baselineUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "baseline_fetched",
			Help:      "1 if the baseline was downloaded and hashed.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		cleanupErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cleanup_errors",
			Help:      "Local files that could not be removed in the last run.",
		}),
	}

	for _, c := range []prometheus.Collector{
		r.mirrorUp, r.mirrorMatch, r.mirrorBytes, r.outcomes,
		r.baselineUp, r.runDuration, r.lastRunTime, r.cleanupErrors,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe sets every gauge from report.
func (r *Recorder) Observe(report *verifier.Report) {
	for _, m := range report.Mirrors {
		labels := prometheus.Labels{"index": strconv.Itoa(m.Endpoint.Index), "host": m.Endpoint.Host}
		r.mirrorUp.With(labels).Set(boolToFloat(m.Reachable))
		r.mirrorMatch.With(labels).Set(boolToFloat(m.Matched))
		r.mirrorBytes.With(labels).Set(float64(m.Bytes))
	}

	s := report.Summary()
	r.outcomes.WithLabelValues(string(verifier.OutcomeUnreachable)).Set(float64(s.Unreachable))
	r.outcomes.WithLabelValues(string(verifier.OutcomeFetchFailed)).Set(float64(s.FetchFailed))
	r.outcomes.WithLabelValues(string(verifier.OutcomeDigestMatch)).Set(float64(s.Match))
	r.outcomes.WithLabelValues(string(verifier.OutcomeDigestMismatch)).Set(float64(s.Mismatch))
	r.outcomes.WithLabelValues(string(verifier.OutcomeNotCompared)).Set(float64(s.NotCompared))
	r.outcomes.WithLabelValues(string(verifier.OutcomeSkipped)).Set(float64(s.Skipped))

	r.baselineUp.Set(boolToFloat(report.Baseline.Fetched && !report.Baseline.Digest.IsZero()))
	r.runDuration.Set(report.Duration().Seconds())
	if !report.FinishedAt.IsZero() {
		r.lastRunTime.Set(float64(report.FinishedAt.Unix()))
	}
	r.cleanupErrors.Set(float64(len(report.Cleanup.Errors)))
}

// WriteTextfile writes the registry in text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile '%s': %w", path, err)
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
