package dataset

import (
	"math"
	"testing"
)

func TestFrame_ColumnKinds(t *testing.T) {
	f := NewFrame(3)
	if err := f.SetNumeric("score", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetLabels("group", []string{"a", "b", "a"}); err != nil {
		t.Fatal(err)
	}

	if !f.HasColumn("score") || !f.HasColumn("group") {
		t.Fatal("columns not registered")
	}
	if _, ok := f.Numeric("group"); ok {
		t.Error("categorical column should not be readable as numeric")
	}
	if _, ok := f.Labels("score"); ok {
		t.Error("numeric column should not be readable as labels")
	}
	if got := f.Columns(); len(got) != 2 || got[0] != "score" {
		t.Errorf("Columns() = %v, want insertion order [score group]", got)
	}
}

func TestFrame_SetNumericRejectsWrongLength(t *testing.T) {
	f := NewFrame(2)
	if err := f.SetNumeric("v", []float64{1}); err == nil {
		t.Error("expected row-count mismatch error")
	}
}

func TestFrame_GroupValuesDropsMissing(t *testing.T) {
	f := NewFrame(6)
	if err := f.SetLabels("group", []string{"a", "a", "b", "b", "", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetNumeric("v", []float64{1, math.NaN(), 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}

	groups, keys, err := f.GroupValues("group", "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want sorted [a b]", keys)
	}
	if len(groups["a"]) != 1 {
		t.Errorf("group a = %v, NaN row should be dropped", groups["a"])
	}
	if len(groups["b"]) != 3 {
		t.Errorf("group b = %v, want 3 values", groups["b"])
	}
}

func TestFrame_GroupValuesMissingColumn(t *testing.T) {
	f := NewFrame(1)
	if _, _, err := f.GroupValues("nope", "v"); err == nil {
		t.Error("expected error for missing grouping column")
	}
}
