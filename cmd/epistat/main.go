package main

import (
	"fmt"
	"os"

	"epistat/adapters/ingest"
	"epistat/adapters/plot"
	"epistat/adapters/report"
	"epistat/adapters/stats/engine"
	"epistat/app"
	"epistat/domain/outcome"
	"epistat/internal"
	"epistat/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	logLevel := "INFO"

	cmd := &cobra.Command{
		Use:   "epistat",
		Short: "Retrospective analysis of epilepsy surgery outcomes by onset age",
		Long: `epistat derives per-year seizure-freedom indicators from ILAE follow-up
scores, compares them across onset-age groups with one-way ANOVA and Tukey's
HSD post-hoc test, and renders the group trends and comparison intervals as
PNG charts.

Failures during the run are logged, not returned: the run ends early and the
process exits normally, matching the append-only log contract of the pipeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := internal.NewLogger(os.Stderr, internal.ParseLogLevel(logLevel))

			service := app.NewAnalysisService(
				cfg,
				log,
				ingest.NewDataReader(log),
				engine.NewStatsEngine(),
				plot.NewChartRenderer(log),
				report.NewMarkdownWriter(log),
				outcome.DefaultCohorts(),
			)
			service.Run(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Paths.InputFile, "input", cfg.Paths.InputFile, "Dataset file (CSV or XLSX)")
	cmd.Flags().StringVar(&cfg.Paths.OutputDir, "output", cfg.Paths.OutputDir, "Directory for charts and the run report")
	cmd.Flags().StringVar(&logLevel, "log-level", logLevel, "Log level (ERROR, WARN, INFO, DEBUG)")

	return cmd
}
