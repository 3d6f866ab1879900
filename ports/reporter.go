package ports

import "epistat/domain/stats"

// RunReport aggregates the statistical findings of one pipeline run for the
// report writer.
type RunReport struct {
	RunID        string
	InputFile    string
	RowCount     int
	CohortAnovas map[string]stats.AnovaResult
	GroupAnovas  map[string]stats.AnovaResult
	TukeyResults []stats.TukeyResult
}

// ReportWriter persists a human-readable summary of a run. Report output is
// best-effort: failures are logged, never fatal to the run.
type ReportWriter interface {
	Write(report RunReport, outputDir string) error
}
