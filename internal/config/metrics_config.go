package config

// MetricsConfig defines the Prometheus textfile export
type MetricsConfig struct {
	// TextfilePath is written in the node_exporter textfile format when set
	TextfilePath string `json:"textfile_path,omitempty" yaml:"textfile_path,omitempty" toml:"textfile_path,omitempty"`
	Namespace    string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
}

// NewDefaultMetricsConfig creates default metrics configuration
func NewDefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: DefaultMetricsNamespace,
	}
}
