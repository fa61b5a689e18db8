package progress

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives byte progress for one download at a time.
type Reporter interface {
	// Start announces a transfer; total is 0 when the size is unknown.
	Start(label string, total int64)
	// Add reports n more bytes written.
	Add(n int64)
	// Finish closes the transfer.
	Finish(err error)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Start(string, int64) {}
func (NopReporter) Add(int64)           {}
func (NopReporter) Finish(error)        {}

// BarReporter draws a byte progress bar per transfer.
type BarReporter struct {
	out      io.Writer
	bar      *progressbar.ProgressBar
	progress *Progress
}

// NewBarReporter creates a BarReporter drawing to out.
func NewBarReporter(out io.Writer) *BarReporter {
	return &BarReporter{out: out, progress: NewProgress()}
}

func (r *BarReporter) Start(label string, total int64) {
	max := total
	if max <= 0 {
		max = -1 // spinner
	}
	r.progress.Begin(label, total)
	r.bar = progressbar.NewOptions64(max,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(r.out, "\n") }),
	)
}

func (r *BarReporter) Add(n int64) {
	r.progress.Add(n)
	if r.bar != nil {
		_ = r.bar.Add64(n)
	}
}

func (r *BarReporter) Finish(err error) {
	r.progress.Finish(err)
	if r.bar == nil {
		return
	}
	if err != nil {
		_ = r.bar.Exit()
		_, _ = io.WriteString(r.out, "\n")
	} else {
		_ = r.bar.Finish()
	}
	r.bar = nil
}

// Info returns the state of the current or last transfer
func (r *BarReporter) Info() ProgressInfo {
	return r.progress.Info()
}

// LogReporter writes throttled progress lines to a zerolog logger, for non-interactive runs.
type LogReporter struct {
	logger   zerolog.Logger
	interval time.Duration
	progress *Progress
	lastLog  time.Time
}

// NewLogReporter creates a LogReporter that logs at most once per interval.
func NewLogReporter(logger zerolog.Logger, interval time.Duration) *LogReporter {
	return &LogReporter{
		logger:   logger.With().Str("component", "Progress").Logger(),
		interval: interval,
		progress: NewProgress(),
	}
}

func (r *LogReporter) Start(label string, total int64) {
	r.progress.Begin(label, total)
	r.lastLog = time.Now()
	r.logger.Debug().Str("label", label).Int64("total_bytes", total).Msg("Transfer started")
}

func (r *LogReporter) Add(n int64) {
	r.progress.Add(n)
	if time.Since(r.lastLog) < r.interval {
		return
	}
	r.lastLog = time.Now()
	info := r.progress.Info()
	r.logger.Info().
		Str("label", info.Label).
		Int64("bytes", info.Current).
		Int64("total_bytes", info.Total).
		Float64("percent", info.GetPercentage()).
		Dur("eta", info.EstimatedETA).
		Msg("Transfer progress")
}

func (r *LogReporter) Finish(err error) {
	r.progress.Finish(err)
	info := r.progress.Info()
	event := r.logger.Debug()
	if err != nil {
		event = r.logger.Warn().Err(err)
	}
	event.Str("label", info.Label).Int64("bytes", info.Current).Msg("Transfer finished")
}

// Info returns the state of the current or last transfer
func (r *LogReporter) Info() ProgressInfo {
	return r.progress.Info()
}
