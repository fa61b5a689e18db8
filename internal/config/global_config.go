package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aleister1102/mirrorcheck/internal/common"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds the configuration file read
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty" toml:"log_config"`
	MirrorConfig  MirrorConfig  `json:"mirror_config,omitempty" yaml:"mirror_config,omitempty" toml:"mirror_config"`
	ProbeConfig   ProbeConfig   `json:"probe_config,omitempty" yaml:"probe_config,omitempty" toml:"probe_config"`
	FetchConfig   FetchConfig   `json:"fetch_config,omitempty" yaml:"fetch_config,omitempty" toml:"fetch_config"`
	DigestConfig  DigestConfig  `json:"digest_config,omitempty" yaml:"digest_config,omitempty" toml:"digest_config"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty" toml:"storage_config"`
	ReportConfig  ReportConfig  `json:"report_config,omitempty" yaml:"report_config,omitempty" toml:"report_config"`
	MetricsConfig MetricsConfig `json:"metrics_config,omitempty" yaml:"metrics_config,omitempty" toml:"metrics_config"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:     NewDefaultLogConfig(),
		MirrorConfig:  NewDefaultMirrorConfig(),
		ProbeConfig:   NewDefaultProbeConfig(),
		FetchConfig:   NewDefaultFetchConfig(),
		DigestConfig:  NewDefaultDigestConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		ReportConfig:  NewDefaultReportConfig(),
		MetricsConfig: NewDefaultMetricsConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports YAML, JSON and TOML,
// chosen by file extension. Without a config file the defaults are returned.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" {
		if _, err := os.Stat(providedPath); err != nil {
			return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
		}
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := loadConfigFileContent(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// loadConfigFileContent reads the config file, refusing oversized files
func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, common.NewValidationError("config_file", filePath, "is a directory")
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewValidationError("config_file", filePath, "config file too large")
	}
	return os.ReadFile(filePath)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return parseYAMLConfig(data, filePath, cfg)
	case ".toml":
		return parseTOMLConfig(data, filePath, cfg)
	default:
		return parseJSONConfig(data, filePath, cfg)
	}
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseTOMLConfig parses TOML configuration
func parseTOMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return common.NewError("failed to unmarshal TOML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
