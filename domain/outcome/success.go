package outcome

import (
	"math"

	"epistat/domain/dataset"
)

// DefineSuccess maps a clinical ILAE score to a binary success indicator.
// A missing score yields a missing indicator; the two are never conflated.
func DefineSuccess(ilaeScore, threshold float64) float64 {
	if math.IsNaN(ilaeScore) {
		return math.NaN()
	}
	if ilaeScore <= threshold {
		return 1
	}
	return 0
}

// DeriveSuccessColumns writes Success_Year{y} for every follow-up year whose
// source score column is present in the frame. Years without a source column
// are skipped, not treated as errors. Re-deriving over an already-derived
// frame produces identical values.
func DeriveSuccessColumns(f *dataset.Frame, years int, threshold float64) []string {
	derived := make([]string, 0, years)
	for year := 1; year <= years; year++ {
		scores, ok := f.Numeric(ILAEColumn(year))
		if !ok {
			continue
		}
		indicators := make([]float64, len(scores))
		for i, s := range scores {
			indicators[i] = DefineSuccess(s, threshold)
		}
		// SetNumeric only fails on a row-count mismatch, which cannot
		// happen for a column derived from the frame itself.
		_ = f.SetNumeric(SuccessColumn(year), indicators)
		derived = append(derived, SuccessColumn(year))
	}
	return derived
}

// TimeToSuccess is the per-row time-to-first-success derivation for one row
// index: the smallest year whose success indicator equals exactly 1, or NaN
// when no year qualifies. Missing indicator columns are tolerated and treated
// as not-a-success for that year.
//
// NaN covers both "known failure across all years" and "no data at all";
// Observed reports whether any year carried a non-missing indicator so
// callers can tell the two apart.
type TimeToSuccessResult struct {
	Year     float64
	Observed bool
}

// DeriveTimeToSuccess writes the Time_to_Success column for every row and
// returns the per-row results
func DeriveTimeToSuccess(f *dataset.Frame, years int) []TimeToSuccessResult {
	results := make([]TimeToSuccessResult, f.RowCount())
	times := make([]float64, f.RowCount())

	indicatorCols := make([][]float64, 0, years)
	for year := 1; year <= years; year++ {
		col, ok := f.Numeric(SuccessColumn(year))
		if !ok {
			col = nil
		}
		indicatorCols = append(indicatorCols, col)
	}

	for i := 0; i < f.RowCount(); i++ {
		r := TimeToSuccessResult{Year: math.NaN()}
		for y, col := range indicatorCols {
			if col == nil {
				continue
			}
			if !math.IsNaN(col[i]) {
				r.Observed = true
			}
			if col[i] == 1 {
				r.Year = float64(y + 1)
				break
			}
		}
		results[i] = r
		times[i] = r.Year
	}

	_ = f.SetNumeric(TimeToSuccessColumn, times)
	return results
}
