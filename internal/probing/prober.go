package probing

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/mirrorcheck/internal/config"
	"github.com/rs/zerolog"
)

// Prober checks whether a host answers before any download is attempted.
// Failures of any kind are reported as false, never as errors.
type Prober interface {
	Probe(ctx context.Context, host string) bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, host string) bool

// Probe calls f(ctx, host).
func (f ProberFunc) Probe(ctx context.Context, host string) bool {
	return f(ctx, host)
}

// NewProber builds the prober selected by cfg.Method.
func NewProber(cfg config.ProbeConfig, logger zerolog.Logger) (Prober, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultProbeTimeoutSecs) * time.Second
	}

	switch cfg.Method {
	case "", "icmp":
		return NewICMPProber(timeout, cfg.Privileged, logger), nil
	case "exec":
		return NewExecProber(cfg.PingBinary, timeout, logger), nil
	case "httpx":
		return NewHTTPXProber(cfg.HTTPMethod, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown probe method '%s'", cfg.Method)
	}
}
