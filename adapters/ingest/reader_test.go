package ingest

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"epistat/internal"
	"epistat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *internal.Logger {
	return internal.NewLogger(io.Discard, internal.LogLevelError)
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_MissingFile(t *testing.T) {
	r := NewDataReader(testLogger())
	_, err := r.Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputFileMissing, errors.GetCode(err))
}

func TestRead_EmptyFile(t *testing.T) {
	r := NewDataReader(testLogger())

	// Header only: zero data rows is an empty table.
	path := writeTempCSV(t, "ILAE_Year1,Binned_Onset_Age\n")
	_, err := r.Read(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputFileEmpty, errors.GetCode(err))
}

func TestRead_UnsupportedExtension(t *testing.T) {
	r := NewDataReader(testLogger())
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := r.Read(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputUnsupported, errors.GetCode(err))
}

func TestRead_CSVColumnTyping(t *testing.T) {
	r := NewDataReader(testLogger())
	path := writeTempCSV(t,
		"ILAE_Year1,Binned_Onset_Age\n"+
			"1,< 1\n"+
			"3,15 to 19\n"+
			",> 50\n"+
			"2.5,3-4\n")

	frame, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, frame.RowCount())

	scores, ok := frame.Numeric("ILAE_Year1")
	require.True(t, ok, "column with only numeric cells should be numeric")
	assert.Equal(t, 1.0, scores[0])
	assert.True(t, math.IsNaN(scores[2]), "blank cell should load as NaN")
	assert.Equal(t, 2.5, scores[3])

	brackets, ok := frame.Labels("Binned_Onset_Age")
	require.True(t, ok, "bracket column should stay categorical")
	assert.Equal(t, "15 to 19", brackets[1])
}

func TestRead_NAValuesAreMissing(t *testing.T) {
	r := NewDataReader(testLogger())
	path := writeTempCSV(t, "v\n1\nNA\nnan\n2\n")

	frame, err := r.Read(context.Background(), path)
	require.NoError(t, err)

	v, ok := frame.Numeric("v")
	require.True(t, ok)
	assert.True(t, math.IsNaN(v[1]))
	assert.True(t, math.IsNaN(v[2]))
}

func TestRead_RaggedRowsTolerated(t *testing.T) {
	r := NewDataReader(testLogger())
	path := writeTempCSV(t, "a,b\n1,x\n2\n")

	frame, err := r.Read(context.Background(), path)
	require.NoError(t, err)

	b, ok := frame.Labels("b")
	require.True(t, ok)
	assert.Equal(t, "", b[1], "short row should read as missing cell")
}

func TestRead_Excel(t *testing.T) {
	x := excelize.NewFile()
	require.NoError(t, x.SetSheetRow("Sheet1", "A1", &[]interface{}{"ILAE_Year1", "Binned_Onset_Age"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "< 1"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A3", &[]interface{}{4, "> 50"}))
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	r := NewDataReader(testLogger())
	frame, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, frame.RowCount())

	scores, ok := frame.Numeric("ILAE_Year1")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 4}, scores)
}
