package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/aleister1102/mirrorcheck/internal/config"
	"github.com/aleister1102/mirrorcheck/internal/digest"
	"github.com/aleister1102/mirrorcheck/internal/fetcher"
	"github.com/aleister1102/mirrorcheck/internal/httpclient"
	"github.com/aleister1102/mirrorcheck/internal/logger"
	"github.com/aleister1102/mirrorcheck/internal/metrics"
	"github.com/aleister1102/mirrorcheck/internal/probing"
	"github.com/aleister1102/mirrorcheck/internal/progress"
	"github.com/aleister1102/mirrorcheck/internal/reporter"
	"github.com/aleister1102/mirrorcheck/internal/urlhandler"
	"github.com/aleister1102/mirrorcheck/internal/verifier"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &AppFlags{}
	cmd := &cobra.Command{
		Use:   "mirrorcheck",
		Short: "Check that CDN mirrors are reachable and serve the same bytes as the origin",
		Long: `mirrorcheck probes every configured mirror, downloads the test file from the
reachable ones, and compares each copy's digest with a copy fetched from the
canonical source. Downloaded files are removed when the run ends.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}
	bindFlags(cmd, flags)
	return cmd
}

func run(cmd *cobra.Command, flags *AppFlags) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	applyOverrides(cmd, flags, gCfg)
	if err := config.ValidateConfig(gCfg); err != nil {
		return err
	}

	// the size is settled before anything touches the network or the disk
	var size int
	if cmd.Flags().Changed("size") {
		if err := config.ValidateSize(flags.Size); err != nil {
			return err
		}
		size = flags.Size
	} else {
		size, err = promptSize(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	runID := uuid.New().String()
	zLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}

	targets, err := urlhandler.BuildTargets(gCfg.MirrorConfig, size)
	if err != nil {
		return fmt.Errorf("could not build mirror list: %w", err)
	}

	pipeline, err := buildPipeline(gCfg, runID, cmd.ErrOrStderr(), zLogger)
	if err != nil {
		return err
	}

	zLogger.Info().Int("size_mb", size).Str("path", targets.Path).Msg("Starting mirror verification")
	report := pipeline.Run(cmd.Context(), targets)

	emitResults(gCfg, report, cmd.OutOrStdout(), zLogger)
	return nil
}

func buildPipeline(gCfg *config.GlobalConfig, runID string, progressOut io.Writer, zLogger zerolog.Logger) (*verifier.Pipeline, error) {
	prober, err := probing.NewProber(gCfg.ProbeConfig, zLogger)
	if err != nil {
		return nil, err
	}

	client, err := httpclient.NewHTTPClientBuilder(zLogger).WithFetchConfig(gCfg.FetchConfig).Build()
	if err != nil {
		return nil, fmt.Errorf("could not create HTTP client: %w", err)
	}

	var rep progress.Reporter = progress.NewLogReporter(zLogger, progressLogInterval)
	if gCfg.FetchConfig.ShowProgress {
		rep = progress.NewBarReporter(progressOut)
	}

	fetch, err := fetcher.NewFetcher(client, fetcher.Config{
		WorkDir:        gCfg.StorageConfig.WorkDir,
		ChunkSize:      gCfg.FetchConfig.ChunkSize,
		CheckFreeSpace: gCfg.FetchConfig.CheckFreeSpace,
	}, rep, zLogger)
	if err != nil {
		return nil, err
	}

	calc, err := digest.NewCalculator(digest.Algorithm(gCfg.DigestConfig.Algorithm), gCfg.DigestConfig.ChunkSize)
	if err != nil {
		return nil, err
	}

	return verifier.NewPipeline(verifier.Dependencies{
		Prober:   prober,
		Fetcher:  fetch,
		Digester: calc,
		Files:    common.NewFileManager(zLogger),
		Logger:   logger.NewPipelineLogger(zLogger),
		RunID:    runID,
	})
}

// emitResults writes the summary, report and metrics. Failures here are logged, not fatal.
func emitResults(gCfg *config.GlobalConfig, report *verifier.Report, out io.Writer, zLogger zerolog.Logger) {
	if gCfg.ReportConfig.Summary {
		reporter.NewSummaryPrinter(out, !color.NoColor).Print(report)
	}

	if path := gCfg.ReportConfig.OutputFile; path != "" {
		if err := reporter.NewJSONReporter(zLogger).Write(report, path); err != nil {
			zLogger.Error().Err(err).Str("path", path).Msg("Failed to write report")
		}
	}

	if path := gCfg.MetricsConfig.TextfilePath; path != "" {
		recorder, err := metrics.NewRecorder(gCfg.MetricsConfig.Namespace)
		if err != nil {
			zLogger.Error().Err(err).Msg("Failed to create metrics recorder")
			return
		}
		recorder.Observe(report)
		if err := recorder.WriteTextfile(path); err != nil {
			zLogger.Error().Err(err).Str("path", path).Msg("Failed to write metrics")
		}
	}
}
