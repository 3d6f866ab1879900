// Package report writes a per-run summary of the statistical findings as
// markdown and an HTML rendering of it.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"epistat/domain/stats"
	"epistat/internal"
	"epistat/internal/errors"
	"epistat/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownWriter renders a RunReport into analysis_report.md and
// analysis_report.html inside the output directory
type MarkdownWriter struct {
	log *internal.Logger
}

// NewMarkdownWriter creates a new report writer
func NewMarkdownWriter(log *internal.Logger) *MarkdownWriter {
	return &MarkdownWriter{log: log}
}

// Write renders and persists the report. Report output is best-effort for
// the pipeline; the caller logs failures without aborting the run.
func (w *MarkdownWriter) Write(report ports.RunReport, outputDir string) error {
	if outputDir == "" {
		w.log.Warn("no output directory configured, skipping run report")
		return nil
	}

	md := w.render(report)
	mdPath := filepath.Join(outputDir, "analysis_report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", mdPath)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	htmlDoc := markdown.ToHTML([]byte(md), p, renderer)

	htmlPath := filepath.Join(outputDir, "analysis_report.html")
	if err := os.WriteFile(htmlPath, htmlDoc, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", htmlPath)
	}

	w.log.Info("run report written: %s", mdPath)
	return nil
}

func (w *MarkdownWriter) render(report ports.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Surgery Outcome Analysis\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- Input: `%s`\n", report.InputFile)
	fmt.Fprintf(&b, "- Records: %d\n\n", report.RowCount)

	writeAnovaSection(&b, "Children vs Adults (two-cohort ANOVA)", report.CohortAnovas)
	writeAnovaSection(&b, "All age brackets (one-way ANOVA)", report.GroupAnovas)

	if len(report.TukeyResults) > 0 {
		fmt.Fprintf(&b, "## Tukey HSD post-hoc comparisons\n\n")
		for _, result := range report.TukeyResults {
			valid := result.Valid()
			if len(valid) == 0 {
				fmt.Fprintf(&b, "No valid comparisons for %s.\n\n", result.ValueColumn)
				continue
			}
			fmt.Fprintf(&b, "### %s (alpha = %.2f)\n\n", result.ValueColumn, result.Alpha)
			fmt.Fprintf(&b, "| Group A | Group B | Mean diff | CI lower | CI upper | p (adj) | Reject |\n")
			fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
			for _, c := range valid {
				fmt.Fprintf(&b, "| %s | %s | %.4f | %.4f | %.4f | %.4f | %t |\n",
					c.GroupA, c.GroupB, c.MeanDiff, c.Lower, c.Upper, c.AdjP, c.Reject)
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	return b.String()
}

func writeAnovaSection(b *strings.Builder, title string, results map[string]stats.AnovaResult) {
	if len(results) == 0 {
		return
	}

	cols := make([]string, 0, len(results))
	for col := range results {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| Outcome column | p-value | F | Groups | N |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|\n")
	for _, col := range cols {
		r := results[col]
		if !r.OK {
			fmt.Fprintf(b, "| %s | no result | - | - | - |\n", col)
			continue
		}
		fmt.Fprintf(b, "| %s | %.6f | %.4f | %d | %d |\n", col, r.P, r.F, r.Groups, r.N)
	}
	fmt.Fprintf(b, "\n")
}
