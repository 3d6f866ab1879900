package config

import (
	"epistat/internal/errors"
)

// Config represents the complete analysis configuration.
//
// Thresholds are explicit fields rather than package globals so a run can be
// constructed with alternative cutoffs in tests without mutating shared state.
type Config struct {
	Analysis AnalysisConfig
	Paths    PathConfig
}

// AnalysisConfig holds the statistical decision parameters
type AnalysisConfig struct {
	// SuccessThreshold is the highest ILAE score that still counts as a
	// post-surgical success.
	SuccessThreshold float64

	// SignificanceThreshold is the ANOVA p-value below which group
	// differences trigger post-hoc testing.
	SignificanceThreshold float64

	// TukeyAlpha is the family-wise error rate for Tukey HSD intervals.
	TukeyAlpha float64

	// FollowUpYears is the number of follow-up years covered by the
	// ILAE_Year{1..N} columns.
	FollowUpYears int
}

// PathConfig holds file system locations for one run
type PathConfig struct {
	// InputFile is the dataset to analyze (CSV or XLSX).
	InputFile string

	// OutputDir receives rendered charts and the run report. When empty,
	// chart rendering is skipped and results are only logged.
	OutputDir string
}

// Default returns the configuration used by the published analysis
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			SuccessThreshold:      2,
			SignificanceThreshold: 0.1,
			TukeyAlpha:            0.05,
			FollowUpYears:         5,
		},
		Paths: PathConfig{
			InputFile: "data/Metadata_Release_Anon.csv",
			OutputDir: "results/visualizations",
		},
	}
}

// Validate checks the configuration for values that would make a run
// statistically meaningless
func (c Config) Validate() error {
	if c.Analysis.FollowUpYears < 1 {
		return errors.New(errors.CodeInternalError, "follow-up years must be at least 1")
	}
	if c.Analysis.SignificanceThreshold <= 0 || c.Analysis.SignificanceThreshold >= 1 {
		return errors.New(errors.CodeInternalError, "significance threshold must be in (0,1)")
	}
	if c.Analysis.TukeyAlpha <= 0 || c.Analysis.TukeyAlpha >= 1 {
		return errors.New(errors.CodeInternalError, "tukey alpha must be in (0,1)")
	}
	if c.Paths.InputFile == "" {
		return errors.New(errors.CodeInternalError, "input file is required")
	}
	return nil
}
