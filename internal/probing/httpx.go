package probing

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/projectdiscovery/httpx/runner"
	"github.com/rs/zerolog"
)

// HTTPXProber treats a host as reachable when httpx gets any HTTP response from it.
// Useful on networks that filter ICMP.
type HTTPXProber struct {
	method  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHTTPXProber creates an HTTPXProber using method (HEAD when empty).
func NewHTTPXProber(method string, timeout time.Duration, logger zerolog.Logger) *HTTPXProber {
	if method == "" {
		method = "HEAD"
	}
	return &HTTPXProber{
		method:  method,
		timeout: timeout,
		logger:  logger.With().Str("component", "HTTPXProber").Logger(),
	}
}

// timeoutSecs is the per-request timeout handed to httpx, at least one second.
func (p *HTTPXProber) timeoutSecs() int {
	secs := int(p.timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (p *HTTPXProber) buildOptions(host string, onResult func(runner.Result)) *runner.Options {
	return &runner.Options{
		Methods:         p.method,
		InputTargetHost: []string{host},
		Timeout:         p.timeoutSecs(),
		Retries:         0,
		Threads:         1,
		Silent:          true,
		NoColor:         true,
		FollowRedirects: false,
		OmitBody:        true,
		HostMaxErrors:   -1,
		OnResult:        onResult,
	}
}

// Probe implements Prober.
func (p *HTTPXProber) Probe(ctx context.Context, host string) bool {
	if host == "" || ctx.Err() != nil {
		return false
	}

	var reachable atomic.Bool
	options := p.buildOptions(host, func(res runner.Result) {
		if res.Error == "" && res.StatusCode > 0 {
			reachable.Store(true)
			return
		}
		p.logger.Debug().Str("host", host).Str("error", res.Error).Msg("httpx probe failed")
	})

	httpxRunner, err := runner.New(options)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Failed to initialize httpx runner")
		return false
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		httpxRunner.RunEnumeration()
		httpxRunner.Close()
	}()

	select {
	case <-done:
		return reachable.Load()
	case <-ctx.Done():
	}

	// The runner cannot be interrupted; its single request ends within the runner timeout.
	if !awaitRunner(done, p.runnerGrace()) {
		p.logger.Warn().Str("host", host).Msg("httpx runner still running after cancellation")
	}
	return false
}

// runnerGrace is how long a canceled probe waits for the runner to finish.
func (p *HTTPXProber) runnerGrace() time.Duration {
	return time.Duration(p.timeoutSecs())*time.Second + time.Second
}

// awaitRunner waits up to grace for done and reports whether it closed.
func awaitRunner(done <-chan struct{}, grace time.Duration) bool {
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
