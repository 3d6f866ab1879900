package app

import (
	"context"
	"os"

	"epistat/domain/dataset"
	"epistat/domain/outcome"
	"epistat/domain/stats"
	"epistat/internal"
	"epistat/internal/config"
	"epistat/internal/errors"
	"epistat/ports"

	"github.com/google/uuid"
)

// AnalysisService orchestrates one run of the surgery outcome analysis:
// load, derive outcomes, compare groups, post-hoc test, render, report.
// The run is strictly sequential; the frame is the only mutable state and
// the service is its only owner for the process lifetime.
type AnalysisService struct {
	cfg        config.Config
	log        *internal.Logger
	reader     ports.DatasetReader
	comparator ports.GroupComparator
	renderer   ports.ChartRenderer
	reporter   ports.ReportWriter
	cohorts    outcome.CohortMap
}

// NewAnalysisService creates the pipeline service
func NewAnalysisService(
	cfg config.Config,
	log *internal.Logger,
	reader ports.DatasetReader,
	comparator ports.GroupComparator,
	renderer ports.ChartRenderer,
	reporter ports.ReportWriter,
	cohorts outcome.CohortMap,
) *AnalysisService {
	return &AnalysisService{
		cfg:        cfg,
		log:        log,
		reader:     reader,
		comparator: comparator,
		renderer:   renderer,
		reporter:   reporter,
		cohorts:    cohorts,
	}
}

// Run executes the full analysis inside one failure boundary. Any error
// anywhere in the sequence aborts the remainder of the run and is logged;
// nothing is re-raised to the caller. All diagnostics go to the log stream.
func (s *AnalysisService) Run(ctx context.Context) {
	runID := uuid.NewString()
	s.log.Info("starting analysis run %s", runID)

	if err := s.run(ctx, runID); err != nil {
		s.log.Error("an error occurred: %v", err)
		return
	}
	s.log.Info("analysis run %s completed", runID)
}

func (s *AnalysisService) run(ctx context.Context, runID string) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	outputDir := s.cfg.Paths.OutputDir
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", outputDir)
		}
	}

	frame, err := s.reader.Read(ctx, s.cfg.Paths.InputFile)
	if err != nil {
		return err
	}

	successCols := s.deriveOutcomes(frame)
	if len(successCols) == 0 {
		s.log.Warn("no ILAE follow-up columns present; nothing to compare")
	}

	if err := s.renderTrends(frame, successCols, outputDir); err != nil {
		return err
	}

	report := ports.RunReport{
		RunID:        runID,
		InputFile:    s.cfg.Paths.InputFile,
		RowCount:     frame.RowCount(),
		CohortAnovas: make(map[string]stats.AnovaResult),
		GroupAnovas:  make(map[string]stats.AnovaResult),
	}

	if err := s.compareCohorts(frame, successCols, outputDir, &report); err != nil {
		return err
	}
	if err := s.compareBrackets(frame, successCols, outputDir, &report); err != nil {
		return err
	}

	if err := s.reporter.Write(report, outputDir); err != nil {
		// Reporting is additive; a failed report never aborts the run.
		s.log.Warn("run report failed: %v", err)
	}
	return nil
}

// deriveOutcomes adds the Success_Year{y} indicator columns for every present
// follow-up year and the Time_to_Success column for every row
func (s *AnalysisService) deriveOutcomes(frame *dataset.Frame) []string {
	years := s.cfg.Analysis.FollowUpYears
	successCols := outcome.DeriveSuccessColumns(frame, years, s.cfg.Analysis.SuccessThreshold)
	s.log.Info("derived %d success indicator columns", len(successCols))

	results := outcome.DeriveTimeToSuccess(frame, years)
	observed := 0
	for _, r := range results {
		if r.Observed {
			observed++
		}
	}
	s.log.Info("derived time to success for %d rows (%d with observed follow-up)", len(results), observed)
	return successCols
}

// renderTrends writes the three dataset-level charts
func (s *AnalysisService) renderTrends(frame *dataset.Frame, successCols []string, outputDir string) error {
	if len(successCols) == 0 {
		return nil
	}
	if err := s.renderer.SuccessRatesByGroup(frame, outcome.GroupColumn, successCols, outputDir); err != nil {
		return err
	}
	if err := s.renderer.CohortComparison(frame, s.cohorts, successCols, outputDir); err != nil {
		return err
	}
	return s.renderer.AvgTimeToSuccess(frame, outcome.GroupColumn, outcome.TimeToSuccessColumn, outputDir)
}

// compareCohorts runs the Children vs Adults comparison per follow-up year,
// escalating to a full-bracket post-hoc test on significance
func (s *AnalysisService) compareCohorts(frame *dataset.Frame, successCols []string, outputDir string, report *ports.RunReport) error {
	for _, col := range successCols {
		result := s.comparator.CohortANOVA(frame, col, s.cohorts)
		report.CohortAnovas[col] = result

		if !result.OK {
			s.log.Warn("insufficient data for Children vs Adults ANOVA (%s)", col)
			continue
		}
		s.log.Info("ANOVA p-value for Children vs Adults (%s): %g", col, result.P)

		if !result.Significant(s.cfg.Analysis.SignificanceThreshold) {
			continue
		}
		s.log.Info("significant difference found between Children and Adults for %s, performing Tukey's HSD test", col)
		if err := s.postHoc(frame, col, outputDir, report); err != nil {
			return err
		}
	}
	return nil
}

// compareBrackets runs the full age-bracket comparison per follow-up year
func (s *AnalysisService) compareBrackets(frame *dataset.Frame, successCols []string, outputDir string, report *ports.RunReport) error {
	for _, col := range successCols {
		result := s.comparator.PerformANOVA(frame, outcome.GroupColumn, col)
		report.GroupAnovas[col] = result

		if !result.OK {
			s.log.Warn("insufficient data or invalid groups for ANOVA (%s)", col)
			continue
		}
		s.log.Info("ANOVA p-value for %s: %g", col, result.P)

		if !result.Significant(s.cfg.Analysis.SignificanceThreshold) {
			continue
		}
		s.log.Info("significant differences found for %s, performing Tukey's HSD test", col)
		if err := s.postHoc(frame, col, outputDir, report); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnalysisService) postHoc(frame *dataset.Frame, col, outputDir string, report *ports.RunReport) error {
	result := s.comparator.TukeyHSD(frame, outcome.GroupColumn, col, s.cfg.Analysis.TukeyAlpha)
	report.TukeyResults = append(report.TukeyResults, result)
	return s.renderer.TukeyIntervals(result, outputDir)
}
