package main

import (
	"github.com/aleister1102/mirrorcheck/internal/config"
	"github.com/spf13/cobra"
)

// AppFlags holds the command line options
type AppFlags struct {
	ConfigFile  string
	Size        int
	LogLevel    string
	WorkDir     string
	ProbeMethod string
	ReportFile  string
	MetricsFile string
	NoProgress  bool
}

func bindFlags(cmd *cobra.Command, flags *AppFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the YAML/JSON/TOML configuration file. If not set, searches default locations.")
	f.IntVarP(&flags.Size, "size", "s", 0, "Size of the test file in MB (1-50). Prompted for on stdin when not set.")
	f.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	f.StringVar(&flags.WorkDir, "work-dir", "", "Directory for downloaded copies (overrides config)")
	f.StringVar(&flags.ProbeMethod, "probe-method", "", "Reachability probe: icmp, exec or httpx (overrides config)")
	f.StringVar(&flags.ReportFile, "report", "", "Write a JSON report of the run to this file (overrides config)")
	f.StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this file (overrides config)")
	f.BoolVar(&flags.NoProgress, "no-progress", false, "Disable download progress bars")
}

// applyOverrides copies explicitly set flags onto cfg.
func applyOverrides(cmd *cobra.Command, flags *AppFlags, cfg *config.GlobalConfig) {
	changed := cmd.Flags().Changed

	if changed("log-level") {
		cfg.LogConfig.LogLevel = flags.LogLevel
	}
	if changed("work-dir") {
		cfg.StorageConfig.WorkDir = flags.WorkDir
	}
	if changed("probe-method") {
		cfg.ProbeConfig.Method = flags.ProbeMethod
	}
	if changed("report") {
		cfg.ReportConfig.OutputFile = flags.ReportFile
	}
	if changed("metrics-file") {
		cfg.MetricsConfig.TextfilePath = flags.MetricsFile
	}
	if flags.NoProgress {
		cfg.FetchConfig.ShowProgress = false
	}
}
