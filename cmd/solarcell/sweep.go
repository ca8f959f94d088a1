package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"solarcell/internal/config"
	"solarcell/pkg/render"
	"solarcell/pkg/report"
	"solarcell/pkg/sweep"
)

// NewSweepCmd creates the sweep command.
func NewSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve the J-V curve and report performance metrics",
		Long: `Sweep solves the single-diode equation at every voltage of an evenly
spaced grid, then derives Voc, Jsc, the maximum power point, fill
factor, and efficiency from the solved curve.

Examples:
  # Analyze the built-in reference GaAs cell
  solarcell sweep

  # Analyze a cell described in a YAML file
  solarcell sweep -c cell.yaml

  # Narrow the sweep window and raise the resolution
  solarcell sweep --start 0 --stop 1.0 --points 2000

  # Emit a JSON report and a rendered J-V figure
  solarcell sweep --json -o report.json --plot curve.png

Configuration file (YAML) example:
  title: GaAs p-i-n Solar Cell
  cell:
    jsc: 30.52638788
    j0: 1e-12
    n: 1.2
    vt: 0.02585
    rs: 0.001
    rsh: 10000
  sweep:
    start: -0.1
    stop: 1.058312
    points: 500
  incident_power: 100`,
		Args: cobra.NoArgs,
		RunE: runSweepCmd,
	}

	// Sweep grid flags
	cmd.Flags().Float64P("start", "s", config.DefaultSweepStart,
		"Sweep start voltage (V)")
	cmd.Flags().Float64P("stop", "e", config.DefaultSweepStop,
		"Sweep stop voltage (V)")
	cmd.Flags().IntP("points", "n", config.DefaultSweepPoints,
		"Number of evenly spaced sweep points")
	cmd.Flags().Float64P("incident-power", "p", config.DefaultIncidentPower,
		"Incident illumination power density (mW/cm²)")
	cmd.Flags().IntP("workers", "w", 0,
		"Concurrent solver workers (0 = number of CPUs)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Cell description file path (YAML)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("plot", "",
		"Render the J-V curve to specified image path (.png, .svg, .pdf)")

	return cmd
}

// runSweepCmd executes the sweep command.
func runSweepCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runSweep(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, an optional configuration
// file, and cobra command flags. Flags the user set explicitly win over the
// file; the file wins over defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		file.Apply(cfg)
	}

	if cmd.Flags().Changed("start") {
		if cfg.SweepStart, err = cmd.Flags().GetFloat64("start"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("stop") {
		if cfg.SweepStop, err = cmd.Flags().GetFloat64("stop"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("points") {
		if cfg.SweepPoints, err = cmd.Flags().GetInt("points"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("incident-power") {
		if cfg.IncidentPower, err = cmd.Flags().GetFloat64("incident-power"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return nil, err
		}
		if workers > 0 {
			cfg.Workers = workers
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.PlotFile, err = cmd.Flags().GetString("plot"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// runSweep solves the curve, derives metrics, and writes the outputs.
func runSweep(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("starting sweep",
		"start", cfg.SweepStart,
		"stop", cfg.SweepStop,
		"points", cfg.SweepPoints,
		"workers", cfg.Workers,
	)

	runner := sweep.NewRunner(sweep.WithWorkers(cfg.Workers))
	curve, err := runner.Run(ctx, cfg.Cell, cfg.Grid())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	metrics, err := curve.Metrics(cfg.IncidentPower)
	if err != nil {
		return fmt.Errorf("deriving metrics: %w", err)
	}
	logger.Info("sweep complete",
		"voc", metrics.Voc,
		"jsc", metrics.Jsc,
		"pmpp", metrics.PMPP,
		"efficiency", metrics.Efficiency,
	)

	perf := &report.Performance{
		Title:         cfg.Title,
		Cell:          cfg.Cell,
		Model:         metrics,
		Measured:      cfg.Measured,
		IncidentPower: cfg.IncidentPower,
		Points:        len(curve),
	}

	if err := writeReport(cfg, perf, stdout); err != nil {
		return err
	}

	if cfg.PlotFile != "" {
		opts := render.DefaultOptions()
		opts.Title = cfg.Title
		if err := render.JV(curve, metrics, cfg.PlotFile, opts); err != nil {
			return fmt.Errorf("rendering figure: %w", err)
		}
		logger.Info("figure written", "path", cfg.PlotFile)
	}

	return nil
}

// writeReport writes the report to stdout and, when configured, to a file.
func writeReport(cfg *config.Config, perf *report.Performance, stdout io.Writer) (err error) {
	writers := []report.Writer{newReportWriter(cfg, stdout)}

	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		writers = append(writers, newReportWriter(cfg, f))
	}

	if _, err := report.NewMultiWriter(writers...).Write(perf); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// newReportWriter selects the writer for the configured report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithParameters(true))
	}
}
