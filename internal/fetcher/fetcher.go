// Package fetcher downloads mirror copies into the work directory.
package fetcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/aleister1102/mirrorcheck/internal/httpclient"
	"github.com/aleister1102/mirrorcheck/internal/progress"
	"github.com/rs/zerolog"
)

// LocalResource is a downloaded file owned by the run that fetched it.
type LocalResource struct {
	Name string
	Path string
	// Size is the number of bytes written
	Size int64
	// DeclaredSize is the Content-Length announced by the server, 0 if none
	DeclaredSize int64
}

// Config holds fetcher settings
type Config struct {
	WorkDir        string
	ChunkSize      int
	CheckFreeSpace bool
}

// Fetcher streams URLs into files under a work directory.
type Fetcher struct {
	client   *httpclient.HTTPClient
	files    *common.FileManager
	reporter progress.Reporter
	pool     *common.ChunkPool
	config   Config
	logger   zerolog.Logger
}

// NewFetcher creates a Fetcher and makes sure the work directory exists.
// A nil reporter disables progress output.
func NewFetcher(client *httpclient.HTTPClient, cfg Config, reporter progress.Reporter, logger zerolog.Logger) (*Fetcher, error) {
	if client == nil {
		return nil, common.NewValidationError("client", nil, "HTTP client is required")
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if reporter == nil {
		reporter = progress.NopReporter{}
	}

	files := common.NewFileManager(logger)
	if err := files.EnsureDirectory(cfg.WorkDir, 0o755); err != nil {
		return nil, common.WrapError(err, "failed to prepare work directory")
	}

	return &Fetcher{
		client:   client,
		files:    files,
		reporter: reporter,
		pool:     common.NewChunkPool(cfg.ChunkSize),
		config:   cfg,
		logger:   logger.With().Str("component", "Fetcher").Logger(),
	}, nil
}

// WorkDir returns the directory downloads are written to
func (f *Fetcher) WorkDir() string {
	return f.config.WorkDir
}

// PathFor returns where a download named name is stored
func (f *Fetcher) PathFor(name string) string {
	return filepath.Join(f.config.WorkDir, name)
}

// Fetch downloads url into <work dir>/name. On error no file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, url, name string) (LocalResource, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return LocalResource{}, common.NewValidationError("name", name, "must be a plain file name")
	}

	resp, err := f.client.Open(ctx, url)
	if err != nil {
		return LocalResource{}, translateError(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if f.config.CheckFreeSpace && resp.ContentLength > 0 {
		if err := f.files.EnsureFreeSpace(f.config.WorkDir, resp.ContentLength); err != nil {
			return LocalResource{}, err
		}
	}

	res := LocalResource{
		Name:         name,
		Path:         f.PathFor(name),
		DeclaredSize: resp.ContentLength,
	}

	f.reporter.Start(name, resp.ContentLength)
	written, err := f.writeFile(res.Path, resp.Body)
	f.reporter.Finish(err)
	if err != nil {
		if _, rmErr := f.files.RemoveIfExists(res.Path); rmErr != nil {
			f.logger.Warn().Err(rmErr).Str("path", res.Path).Msg("Failed to remove partial download")
		}
		return LocalResource{}, common.WrapErrorf(err, "download of '%s' failed", url)
	}
	res.Size = written

	f.logger.Debug().
		Str("url", url).
		Str("path", res.Path).
		Int64("bytes", written).
		Int64("declared_bytes", res.DeclaredSize).
		Msg("Download complete")

	return res, nil
}

func (f *Fetcher) writeFile(path string, body io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, common.WrapError(err, "failed to create local file")
	}

	buf := f.pool.Get()
	defer f.pool.Put(buf)

	var written int64
	for {
		n, readErr := body.Read(*buf)
		if n > 0 {
			if _, err := file.Write((*buf)[:n]); err != nil {
				_ = file.Close()
				return written, common.WrapError(err, "failed to write local file")
			}
			written += int64(n)
			f.reporter.Add(int64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = file.Close()
			return written, common.WrapError(readErr, "failed to read response body")
		}
	}

	if err := file.Close(); err != nil {
		return written, common.WrapError(err, "failed to close local file")
	}
	return written, nil
}

// translateError maps transport errors onto the shared error vocabulary.
func translateError(url string, err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return common.NewHTTPErrorWithURL(httpErr.StatusCode, httpErr.Body, url)
	}
	var netErr *httpclient.NetworkError
	if errors.As(err, &netErr) {
		return common.NewNetworkError(url, netErr.Message, netErr.Err)
	}
	return common.WrapErrorf(err, "request to '%s' failed", url)
}
