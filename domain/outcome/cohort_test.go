package outcome

import (
	"math"
	"testing"

	"epistat/domain/dataset"
)

func TestDefaultCohorts_CoversEveryBracketOnce(t *testing.T) {
	m := DefaultCohorts()

	children := 0
	adults := 0
	for bracket, cohort := range m {
		switch cohort {
		case CohortChildren:
			children++
		case CohortAdults:
			adults++
		default:
			t.Errorf("bracket %q mapped to unknown cohort %q", bracket, cohort)
		}
	}
	if children != 6 {
		t.Errorf("children brackets = %d, want 6", children)
	}
	if adults != 8 {
		t.Errorf("adult brackets = %d, want 8", adults)
	}

	if m.Cohort("11 to 14") != CohortChildren {
		t.Error("onset at 11 to 14 should be Children")
	}
	if m.Cohort("15 to 19") != CohortAdults {
		t.Error("onset at 15 to 19 should be Adults")
	}
	if m.Cohort("unmapped bracket") != "" {
		t.Error("unknown bracket should map to empty cohort")
	}
}

func TestSplitValues_DropsMissingAndUnmapped(t *testing.T) {
	f := dataset.NewFrame(5)
	if err := f.SetLabels(GroupColumn, []string{"< 1", "> 50", "", "3-4", "3-4"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetNumeric("v", []float64{1, 0, 1, math.NaN(), 1}); err != nil {
		t.Fatal(err)
	}

	children, adults, err := DefaultCohorts().SplitValues(f, "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 {
		t.Errorf("children values = %v, want 2 entries", children)
	}
	if len(adults) != 1 {
		t.Errorf("adult values = %v, want 1 entry", adults)
	}
}

func TestCohortMeans_EmptyCohortIsNaN(t *testing.T) {
	f := dataset.NewFrame(2)
	if err := f.SetLabels(GroupColumn, []string{"< 1", "1 to 2"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetNumeric(SuccessColumn(1), []float64{1, 0}); err != nil {
		t.Fatal(err)
	}

	children, adults, err := DefaultCohorts().CohortMeans(f, []string{SuccessColumn(1)})
	if err != nil {
		t.Fatal(err)
	}
	if children[0] != 0.5 {
		t.Errorf("children mean = %v, want 0.5", children[0])
	}
	if !math.IsNaN(adults[0]) {
		t.Errorf("adults mean = %v, want NaN for empty cohort", adults[0])
	}
}
