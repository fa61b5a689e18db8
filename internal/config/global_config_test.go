package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultMirrorRepo, cfg.MirrorConfig.Repo)
	assert.Len(t, cfg.MirrorConfig.MirrorTemplates, 11)
	assert.Equal(t, "icmp", cfg.ProbeConfig.Method)
	assert.Equal(t, "md5", cfg.DigestConfig.Algorithm)
	assert.Equal(t, 4096, cfg.DigestConfig.ChunkSize)
	assert.Equal(t, 0, cfg.FetchConfig.TimeoutSecs)
	assert.Equal(t, ".", cfg.StorageConfig.WorkDir)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirrorcheck.yaml")
	content := `
log_config:
  log_level: debug
probe_config:
  method: exec
  timeout_secs: 5
digest_config:
  algorithm: sha256
storage_config:
  work_dir: /tmp/mirrors
mirror_config:
  mirror_templates:
    - "https://mirror.example.com/{repo}/{sha}/{path}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "exec", cfg.ProbeConfig.Method)
	assert.Equal(t, 5, cfg.ProbeConfig.TimeoutSecs)
	assert.Equal(t, "sha256", cfg.DigestConfig.Algorithm)
	assert.Equal(t, "/tmp/mirrors", cfg.StorageConfig.WorkDir)
	assert.Equal(t, []string{"https://mirror.example.com/{repo}/{sha}/{path}"}, cfg.MirrorConfig.MirrorTemplates)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultBaselineTemplate, cfg.MirrorConfig.BaselineTemplate)
	assert.Equal(t, DefaultFetchUserAgent, cfg.FetchConfig.UserAgent)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirrorcheck.json")
	content := `{"probe_config": {"method": "httpx", "http_method": "GET"}, "report_config": {"output_file": "report.json", "summary": false}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "httpx", cfg.ProbeConfig.Method)
	assert.Equal(t, "GET", cfg.ProbeConfig.HTTPMethod)
	assert.Equal(t, "report.json", cfg.ReportConfig.OutputFile)
	assert.False(t, cfg.ReportConfig.Summary)
}

func TestLoadGlobalConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirrorcheck.toml")
	content := `
[fetch_config]
user_agent = "probe-bot/2.0"
timeout_secs = 120

[metrics_config]
textfile_path = "/var/lib/node_exporter/mirrorcheck.prom"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "probe-bot/2.0", cfg.FetchConfig.UserAgent)
	assert.Equal(t, 120, cfg.FetchConfig.TimeoutSecs)
	assert.Equal(t, "/var/lib/node_exporter/mirrorcheck.prom", cfg.MetricsConfig.TextfilePath)
}

func TestLoadGlobalConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGlobalConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("probe_config: [unterminated"), 0o644))
	_, err = LoadGlobalConfig(bad)
	assert.Error(t, err)
}

func TestGetConfigPath_EnvVar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	t.Setenv(ConfigPathEnvVar, path)
	assert.Equal(t, path, GetConfigPath(""))

	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("{}"), 0o644))
	assert.Equal(t, explicit, GetConfigPath(explicit))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, LoadDotEnv())

	t.Setenv(ConfigPathEnvVar, "")
	require.NoError(t, os.Unsetenv(ConfigPathEnvVar))
	require.NoError(t, os.WriteFile(".env", []byte(ConfigPathEnvVar+"=from-dotenv.yaml\n"), 0o644))
	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "from-dotenv.yaml", os.Getenv(ConfigPathEnvVar))
}
