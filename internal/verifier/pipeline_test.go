package verifier

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aleister1102/mirrorcheck/internal/digest"
	"github.com/aleister1102/mirrorcheck/internal/fetcher"
	"github.com/aleister1102/mirrorcheck/internal/httpclient"
	"github.com/aleister1102/mirrorcheck/internal/probing"
	"github.com/aleister1102/mirrorcheck/internal/urlhandler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level string
	msg   string
	err   error
}

type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) Info(msg string, _ ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: "info", msg: msg})
}

func (l *captureLogger) Error(msg string, err error, _ ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: "error", msg: msg, err: err})
}

func (l *captureLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

// mirrorServer serves fixed content per path and 404 for anything else.
func mirrorServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(content)
	}))
	t.Cleanup(server.Close)
	return server
}

func hostProber(up ...string) probing.Prober {
	return probing.ProberFunc(func(_ context.Context, host string) bool {
		for _, h := range up {
			if h == host {
				return true
			}
		}
		return false
	})
}

func buildTargets(t *testing.T, baseline string, mirrors ...string) *urlhandler.Targets {
	t.Helper()
	targets := &urlhandler.Targets{Path: "1MB.bin"}
	for i, raw := range mirrors {
		ep, err := urlhandler.ParseEndpoint(i, raw)
		require.NoError(t, err)
		targets.Mirrors = append(targets.Mirrors, ep)
	}
	ep, err := urlhandler.ParseEndpoint(urlhandler.BaselineIndex, baseline)
	require.NoError(t, err)
	targets.Baseline = ep
	return targets
}

type fixture struct {
	workDir string
	logger  *captureLogger
	fetcher *fetcher.Fetcher
	calc    *digest.Calculator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	workDir := t.TempDir()
	f, err := fetcher.NewFetcher(client, fetcher.Config{WorkDir: workDir}, nil, zerolog.Nop())
	require.NoError(t, err)
	calc, err := digest.NewCalculator(digest.MD5, 4096)
	require.NoError(t, err)
	return &fixture{workDir: workDir, logger: &captureLogger{}, fetcher: f, calc: calc}
}

func (fx *fixture) pipeline(t *testing.T, prober probing.Prober, digester Digester) *Pipeline {
	t.Helper()
	if digester == nil {
		digester = fx.calc
	}
	p, err := NewPipeline(Dependencies{
		Prober:   prober,
		Fetcher:  fx.fetcher,
		Digester: digester,
		Logger:   fx.logger,
	})
	require.NoError(t, err)
	return p
}

func (fx *fixture) assertWorkDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(fx.workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPipeline_OneReachableOneUnreachable(t *testing.T) {
	content := bytes.Repeat([]byte("X"), 10000)
	server := mirrorServer(t, map[string][]byte{
		"/mirror/1MB.bin": content,
		"/origin/1MB.bin": content,
	})
	fx := newFixture(t)

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/mirror/1MB.bin",
		"http://unreachable.invalid/1MB.bin",
	)
	report := fx.pipeline(t, hostProber("127.0.0.1"), nil).Run(context.Background(), targets)

	require.Len(t, report.Mirrors, 2)

	up := report.Mirrors[0]
	assert.True(t, up.Reachable)
	assert.True(t, up.Fetched)
	assert.True(t, up.Matched)
	assert.Equal(t, OutcomeDigestMatch, up.Outcome)
	assert.Equal(t, int64(len(content)), up.Bytes)
	assert.Equal(t, report.Baseline.Digest.Hex(), up.Digest.Hex())

	down := report.Mirrors[1]
	assert.False(t, down.Reachable)
	assert.False(t, down.Fetched)
	assert.Equal(t, OutcomeUnreachable, down.Outcome)

	// exactly one mirror file plus the baseline existed before cleanup
	require.Len(t, report.Cleanup.Removed, 2)
	var mirrorFiles int
	for _, p := range report.Cleanup.Removed {
		if !strings.HasPrefix(filepath.Base(p), "baseline-") {
			mirrorFiles++
		}
	}
	assert.Equal(t, 1, mirrorFiles)
	assert.Empty(t, report.Cleanup.Errors)

	fx.assertWorkDirEmpty(t)

	s := report.Summary()
	assert.Equal(t, Summary{Total: 2, Unreachable: 1, Match: 1}, s)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.Canceled)
	assert.Contains(t, fx.logger.messages("info"), "Mirror unreachable")
	assert.Contains(t, fx.logger.messages("info"), "Cleanup finished")
}

func TestPipeline_MismatchAndCollidingNames(t *testing.T) {
	good := []byte("the real payload")
	bad := []byte("the real paylOad")
	server := mirrorServer(t, map[string][]byte{
		"/a/1MB.bin":      good,
		"/b/1MB.bin":      bad,
		"/origin/1MB.bin": good,
	})
	fx := newFixture(t)

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/a/1MB.bin",
		server.URL+"/b/1MB.bin",
	)
	report := fx.pipeline(t, hostProber("127.0.0.1"), nil).Run(context.Background(), targets)

	require.Len(t, report.Mirrors, 2)
	assert.Equal(t, OutcomeDigestMatch, report.Mirrors[0].Outcome)
	assert.Equal(t, OutcomeDigestMismatch, report.Mirrors[1].Outcome)
	assert.False(t, report.Mirrors[1].Matched)
	assert.NotEqual(t, report.Mirrors[0].LocalPath, report.Mirrors[1].LocalPath)
	assert.Len(t, report.Cleanup.Removed, 3)
	fx.assertWorkDirEmpty(t)
}

func TestPipeline_BaselineFailureSkipsComparison(t *testing.T) {
	server := mirrorServer(t, map[string][]byte{
		"/a/1MB.bin": []byte("aaa"),
		"/b/1MB.bin": []byte("bbb"),
	})
	fx := newFixture(t)

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/a/1MB.bin",
		server.URL+"/b/1MB.bin",
	)
	report := fx.pipeline(t, hostProber("127.0.0.1"), nil).Run(context.Background(), targets)

	assert.False(t, report.Baseline.Fetched)
	require.Error(t, report.Baseline.Err)
	assert.True(t, report.Baseline.Digest.IsZero())

	s := report.Summary()
	assert.Zero(t, s.Match)
	assert.Zero(t, s.Mismatch)
	assert.Equal(t, 2, s.NotCompared)
	for _, m := range report.Mirrors {
		assert.True(t, m.Fetched)
		assert.True(t, m.Digest.IsZero())
	}

	assert.Len(t, report.Cleanup.Removed, 2)
	fx.assertWorkDirEmpty(t)
	assert.Contains(t, fx.logger.messages("error"), "Baseline download failed, skipping comparison")
}

func TestPipeline_MirrorFetchFailure(t *testing.T) {
	content := []byte("payload")
	server := mirrorServer(t, map[string][]byte{
		"/origin/1MB.bin": content,
	})
	fx := newFixture(t)

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/gone/1MB.bin",
	)
	report := fx.pipeline(t, hostProber("127.0.0.1"), nil).Run(context.Background(), targets)

	m := report.Mirrors[0]
	assert.True(t, m.Reachable)
	assert.False(t, m.Fetched)
	assert.Equal(t, OutcomeFetchFailed, m.Outcome)
	require.Error(t, m.Err)
	assert.True(t, report.Baseline.Fetched)
	assert.False(t, report.Baseline.Digest.IsZero())
	fx.assertWorkDirEmpty(t)
}

type failingDigester struct {
	inner  *digest.Calculator
	failOn string
}

func (d *failingDigester) Digest(path string) (digest.Digest, error) {
	if strings.HasSuffix(path, d.failOn) {
		return digest.Digest{}, errors.New("read error")
	}
	return d.inner.Digest(path)
}

func (d *failingDigester) Algorithm() digest.Algorithm { return d.inner.Algorithm() }

func TestPipeline_DigestErrorCountsAsFetchFailed(t *testing.T) {
	content := []byte("payload")
	server := mirrorServer(t, map[string][]byte{
		"/a/1MB.bin":      content,
		"/b/1MB.bin":      content,
		"/origin/1MB.bin": content,
	})
	fx := newFixture(t)

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/a/1MB.bin",
		server.URL+"/b/1MB.bin",
	)
	digester := &failingDigester{inner: fx.calc, failOn: "01-1MB.bin"}
	report := fx.pipeline(t, hostProber("127.0.0.1"), digester).Run(context.Background(), targets)

	assert.Equal(t, OutcomeDigestMatch, report.Mirrors[0].Outcome)
	assert.Equal(t, OutcomeFetchFailed, report.Mirrors[1].Outcome)
	assert.EqualError(t, report.Mirrors[1].Err, "read error")
	fx.assertWorkDirEmpty(t)
}

func TestPipeline_CanceledContext(t *testing.T) {
	server := mirrorServer(t, map[string][]byte{
		"/a/1MB.bin":      []byte("a"),
		"/origin/1MB.bin": []byte("a"),
	})
	fx := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	targets := buildTargets(t, server.URL+"/origin/1MB.bin", server.URL+"/a/1MB.bin")
	report := fx.pipeline(t, hostProber("127.0.0.1"), nil).Run(ctx, targets)

	assert.True(t, report.Canceled)
	assert.Equal(t, OutcomeSkipped, report.Mirrors[0].Outcome)
	assert.ErrorIs(t, report.Baseline.Err, context.Canceled)
	fx.assertWorkDirEmpty(t)
}

func TestPipeline_CancelMidRunStillCleansUp(t *testing.T) {
	content := []byte("content")
	server := mirrorServer(t, map[string][]byte{
		"/a/1MB.bin":      content,
		"/b/1MB.bin":      content,
		"/origin/1MB.bin": content,
	})
	fx := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probes := 0
	prober := probing.ProberFunc(func(_ context.Context, host string) bool {
		probes++
		if probes == 2 {
			cancel()
			return false
		}
		return true
	})

	targets := buildTargets(t,
		server.URL+"/origin/1MB.bin",
		server.URL+"/a/1MB.bin",
		server.URL+"/b/1MB.bin",
		server.URL+"/c/1MB.bin",
	)
	report := fx.pipeline(t, prober, nil).Run(ctx, targets)

	assert.True(t, report.Canceled)
	assert.Equal(t, OutcomeNotCompared, report.Mirrors[0].Outcome)
	assert.Equal(t, OutcomeUnreachable, report.Mirrors[1].Outcome)
	assert.Equal(t, OutcomeSkipped, report.Mirrors[2].Outcome)
	assert.Len(t, report.Cleanup.Removed, 1)
	fx.assertWorkDirEmpty(t)
}

func TestNewPipeline_RequiresCollaborators(t *testing.T) {
	fx := newFixture(t)

	_, err := NewPipeline(Dependencies{Fetcher: fx.fetcher, Digester: fx.calc})
	assert.Error(t, err)
	_, err = NewPipeline(Dependencies{Prober: hostProber(), Digester: fx.calc})
	assert.Error(t, err)
	_, err = NewPipeline(Dependencies{Prober: hostProber(), Fetcher: fx.fetcher})
	assert.Error(t, err)

	p, err := NewPipeline(Dependencies{Prober: hostProber(), Fetcher: fx.fetcher, Digester: fx.calc, RunID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", p.RunID())
}
