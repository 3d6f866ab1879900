package outcome

import (
	"math"
	"testing"

	"epistat/domain/dataset"
)

const successThreshold = 2

func TestDefineSuccess_ThresholdBoundary(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{1, 1},
		{2, 1}, // at the threshold still counts as success
		{2.5, 0},
		{3, 0},
		{6, 0},
	}
	for _, c := range cases {
		got := DefineSuccess(c.score, successThreshold)
		if got != c.want {
			t.Errorf("DefineSuccess(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestDefineSuccess_MissingScoreStaysMissing(t *testing.T) {
	got := DefineSuccess(math.NaN(), successThreshold)
	if !math.IsNaN(got) {
		t.Errorf("DefineSuccess(NaN) = %v, want NaN", got)
	}
}

func TestDeriveSuccessColumns(t *testing.T) {
	f := dataset.NewFrame(4)
	mustSetNumeric(t, f, ILAEColumn(1), []float64{1, 3, 2, math.NaN()})

	derived := DeriveSuccessColumns(f, 5, successThreshold)
	if len(derived) != 1 || derived[0] != SuccessColumn(1) {
		t.Fatalf("derived = %v, want [%s]", derived, SuccessColumn(1))
	}

	got, ok := f.Numeric(SuccessColumn(1))
	if !ok {
		t.Fatal("success column not added to frame")
	}
	want := []float64{1, 0, 1, math.NaN()}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("row %d = %v, want NaN", i, got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDeriveSuccessColumns_Idempotent(t *testing.T) {
	f := dataset.NewFrame(3)
	mustSetNumeric(t, f, ILAEColumn(1), []float64{1, 4, math.NaN()})
	mustSetNumeric(t, f, ILAEColumn(2), []float64{2, 2, 5})

	DeriveSuccessColumns(f, 5, successThreshold)
	first := snapshot(t, f, SuccessColumn(1))

	DeriveSuccessColumns(f, 5, successThreshold)
	second := snapshot(t, f, SuccessColumn(1))

	for i := range first {
		if first[i] != second[i] && !(math.IsNaN(first[i]) && math.IsNaN(second[i])) {
			t.Errorf("re-derivation changed row %d: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestDeriveTimeToSuccess_FirstQualifyingYear(t *testing.T) {
	f := dataset.NewFrame(3)
	mustSetNumeric(t, f, SuccessColumn(1), []float64{1, 0, 0})
	mustSetNumeric(t, f, SuccessColumn(2), []float64{1, 1, 0})

	results := DeriveTimeToSuccess(f, 5)

	if results[0].Year != 1 {
		t.Errorf("row 0 time to success = %v, want 1", results[0].Year)
	}
	if results[1].Year != 2 {
		t.Errorf("row 1 time to success = %v, want 2", results[1].Year)
	}
	if !math.IsNaN(results[2].Year) {
		t.Errorf("row 2 time to success = %v, want NaN", results[2].Year)
	}
	if !results[2].Observed {
		t.Error("row 2 had non-missing indicators, Observed should be true")
	}

	times, ok := f.Numeric(TimeToSuccessColumn)
	if !ok {
		t.Fatal("time to success column not added to frame")
	}
	if times[0] != 1 || times[1] != 2 {
		t.Errorf("frame column = %v, want [1 2 NaN]", times)
	}
}

// Years 3-5 absent entirely: the search tolerates missing columns and the
// result has no unexplained missing entries where a qualifying year exists.
func TestDeriveTimeToSuccess_MissingYearColumns(t *testing.T) {
	f := dataset.NewFrame(2)
	mustSetNumeric(t, f, SuccessColumn(1), []float64{0, math.NaN()})
	mustSetNumeric(t, f, SuccessColumn(2), []float64{1, math.NaN()})

	results := DeriveTimeToSuccess(f, 5)

	if results[0].Year != 2 {
		t.Errorf("row 0 time to success = %v, want 2", results[0].Year)
	}
	if !math.IsNaN(results[1].Year) {
		t.Errorf("row 1 time to success = %v, want NaN", results[1].Year)
	}
	if results[1].Observed {
		t.Error("row 1 has no observed indicators, Observed should be false")
	}
}

func mustSetNumeric(t *testing.T, f *dataset.Frame, name string, values []float64) {
	t.Helper()
	if err := f.SetNumeric(name, values); err != nil {
		t.Fatalf("SetNumeric(%s): %v", name, err)
	}
}

func snapshot(t *testing.T, f *dataset.Frame, name string) []float64 {
	t.Helper()
	col, ok := f.Numeric(name)
	if !ok {
		t.Fatalf("column %s missing", name)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out
}
