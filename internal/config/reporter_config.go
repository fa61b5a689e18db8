package config

// ReportConfig defines the optional machine-readable run report
type ReportConfig struct {
	// OutputFile receives a JSON report of the run when set
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty" toml:"output_file,omitempty"`
	// Summary prints the per-mirror table to stdout
	Summary bool `json:"summary" yaml:"summary" toml:"summary"`
}

// NewDefaultReportConfig creates default report configuration
func NewDefaultReportConfig() ReportConfig {
	return ReportConfig{
		Summary: true,
	}
}
