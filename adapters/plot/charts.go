// Package plot renders the analysis charts as PNG files using gonum/plot.
// All renderers are stateless: one call, one image written into the output
// directory.
package plot

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"epistat/domain/dataset"
	"epistat/domain/outcome"
	"epistat/domain/stats"
	"epistat/internal"
	"epistat/internal/errors"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// ChartRenderer renders charts with gonum/plot
type ChartRenderer struct {
	log *internal.Logger
}

// NewChartRenderer creates a new chart renderer
func NewChartRenderer(log *internal.Logger) *ChartRenderer {
	return &ChartRenderer{log: log}
}

// SuccessRatesByGroup plots the mean success rate per age bracket across the
// follow-up years, one line series per bracket
func (r *ChartRenderer) SuccessRatesByGroup(f *dataset.Frame, groupCol string, successCols []string, outputDir string) error {
	if outputDir == "" {
		r.log.Warn("no output directory configured, skipping success rate chart")
		return nil
	}

	// Collect per-group means for every year column, keyed by bracket.
	series := make(map[string][]float64)
	var order []string
	for idx, col := range successCols {
		groups, keys, err := f.GroupValues(groupCol, col)
		if err != nil {
			return errors.RenderFailed("success rates by group", err)
		}
		for _, k := range keys {
			if _, seen := series[k]; !seen {
				order = append(order, k)
				series[k] = nanSlice(len(successCols))
			}
			m, _ := mstats.Mean(groups[k])
			series[k][idx] = m
		}
	}
	sort.Strings(order)

	p := plot.New()
	p.Title.Text = "Success Rates Over Years by Group"
	p.X.Label.Text = "Years After Surgery"
	p.Y.Label.Text = "Success Rate"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	p.NominalX(yearLabels(len(successCols))...)

	var lineArgs []interface{}
	for _, bracket := range order {
		pts := make(plotter.XYs, 0, len(successCols))
		for i, v := range series[bracket] {
			if math.IsNaN(v) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(i), Y: v})
		}
		if len(pts) == 0 {
			continue
		}
		lineArgs = append(lineArgs, bracket, pts)
	}
	if err := plotutil.AddLinePoints(p, lineArgs...); err != nil {
		return errors.RenderFailed("success rates by group", err)
	}

	return r.save(p, filepath.Join(outputDir, "success_rates_by_group.png"))
}

// CohortComparison plots the averaged success trend for the Children and
// Adults cohorts as exactly two line series. A mismatch between the year
// labels and the computed averages is a hard error: it signals a shape
// defect in the data or the code, not missing observations.
func (r *ChartRenderer) CohortComparison(f *dataset.Frame, cohorts outcome.CohortMap, successCols []string, outputDir string) error {
	if outputDir == "" {
		r.log.Warn("no output directory configured, skipping cohort comparison chart")
		return nil
	}

	children, adults, err := cohorts.CohortMeans(f, successCols)
	if err != nil {
		return errors.RenderFailed("cohort comparison", err)
	}

	labels := yearLabels(len(successCols))
	if len(children) != len(labels) || len(adults) != len(labels) {
		return errors.ShapeMismatch(fmt.Sprintf(
			"mismatch between number of years (%d) and number of success averages (children %d, adults %d)",
			len(labels), len(children), len(adults)))
	}

	p := plot.New()
	p.Title.Text = "Average Success Rates: Children vs Adults"
	p.X.Label.Text = "Years After Surgery"
	p.Y.Label.Text = "Average Success Rate"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	p.NominalX(labels...)

	if err := plotutil.AddLinePoints(p,
		outcome.CohortChildren, seriesPoints(children),
		outcome.CohortAdults, seriesPoints(adults),
	); err != nil {
		return errors.RenderFailed("cohort comparison", err)
	}

	return r.save(p, filepath.Join(outputDir, "success_rates_children_vs_adults.png"))
}

// AvgTimeToSuccess plots the mean time to success per age bracket as a bar
// chart, sorted by bracket label, omitting brackets with no non-missing value
func (r *ChartRenderer) AvgTimeToSuccess(f *dataset.Frame, groupCol, timeCol string, outputDir string) error {
	if outputDir == "" {
		r.log.Warn("no output directory configured, skipping time-to-success chart")
		return nil
	}

	groups, keys, err := f.GroupValues(groupCol, timeCol)
	if err != nil {
		return errors.RenderFailed("average time to success", err)
	}

	var labels []string
	var values plotter.Values
	for _, k := range keys {
		if len(groups[k]) == 0 {
			continue
		}
		m, _ := mstats.Mean(groups[k])
		labels = append(labels, k)
		values = append(values, m)
	}

	p := plot.New()
	p.Title.Text = "Average Time to Success by Age Group"
	p.X.Label.Text = "Age Groups"
	p.Y.Label.Text = "Average Time to Success (Years)"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.RenderFailed("average time to success", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, filepath.Join(outputDir, "avg_time_to_success.png"))
}

// TukeyIntervals plots the simultaneous confidence interval of every valid
// pairwise comparison as a horizontal segment around its mean difference,
// with a reference line at zero. When no valid comparisons remain the chart
// is skipped entirely and no file is produced.
func (r *ChartRenderer) TukeyIntervals(result stats.TukeyResult, outputDir string) error {
	valid := result.Valid()
	if len(valid) == 0 {
		r.log.Warn("no valid Tukey test results for %s", result.ValueColumn)
		return nil
	}
	if outputDir == "" {
		r.log.Warn("no output directory configured, skipping Tukey chart for %s", result.ValueColumn)
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Tukey HSD Test: %s", result.ValueColumn)
	p.X.Label.Text = "Mean Difference"
	p.Add(plotter.NewGrid())

	ticks := make([]plot.Tick, 0, len(valid))
	for i, c := range valid {
		y := float64(i + 1)
		seg := plotter.XYs{{X: c.Lower, Y: y}, {X: c.Upper, Y: y}}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return errors.RenderFailed("tukey intervals", err)
		}
		line.Width = vg.Points(2)
		line.Color = plotutil.Color(0)
		p.Add(line)

		center, err := plotter.NewScatter(plotter.XYs{{X: c.MeanDiff, Y: y}})
		if err != nil {
			return errors.RenderFailed("tukey intervals", err)
		}
		center.GlyphStyle.Radius = vg.Points(3)
		center.GlyphStyle.Color = plotutil.Color(1)
		p.Add(center)

		ticks = append(ticks, plot.Tick{Value: y, Label: fmt.Sprintf("%s vs %s", c.GroupA, c.GroupB)})
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0.5}, {X: 0, Y: float64(len(valid)) + 0.5}})
	if err != nil {
		return errors.RenderFailed("tukey intervals", err)
	}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0.5
	p.Y.Max = float64(len(valid)) + 0.5

	name := fmt.Sprintf("tukey_hsd_%s.png", result.ValueColumn)
	return r.save(p, filepath.Join(outputDir, name))
}

func (r *ChartRenderer) save(p *plot.Plot, path string) error {
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errors.RenderFailed(filepath.Base(path), err)
	}
	r.log.Info("chart written: %s", path)
	return nil
}

func yearLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Year %d", i+1)
	}
	return labels
}

func seriesPoints(values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
