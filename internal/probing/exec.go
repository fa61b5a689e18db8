package probing

import (
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ExecProber runs the system ping binary once per host.
type ExecProber struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewExecProber creates an ExecProber. An empty binary defaults to "ping".
func NewExecProber(binary string, timeout time.Duration, logger zerolog.Logger) *ExecProber {
	if binary == "" {
		binary = "ping"
	}
	return &ExecProber{
		binary:  binary,
		timeout: timeout,
		logger:  logger.With().Str("component", "ExecProber").Logger(),
	}
}

// Args returns the arguments passed to the ping binary for host.
func (p *ExecProber) Args(host string) []string {
	secs := int(p.timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), host}
}

// Probe implements Prober. Reachable means the binary exited with status 0.
func (p *ExecProber) Probe(ctx context.Context, host string) bool {
	if host == "" || ctx.Err() != nil {
		return false
	}

	// -W bounds the wait for a reply; the extra second covers process start and DNS
	ctx, cancel := context.WithTimeout(ctx, p.timeout+time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, p.Args(host)...)
	if err := cmd.Run(); err != nil {
		p.logger.Debug().Err(err).Str("host", host).Msg("Ping failed")
		return false
	}
	return true
}
