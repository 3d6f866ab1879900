package ingest

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"epistat/domain/dataset"
	"epistat/internal"
	"epistat/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader loads CSV and Excel tables into a dataset.Frame
type DataReader struct {
	log *internal.Logger
}

// NewDataReader creates a new data reader
func NewDataReader(log *internal.Logger) *DataReader {
	return &DataReader{log: log}
}

// Read loads the table at path. The path is resolved to absolute form first;
// a missing file and an empty table are distinct fatal input errors.
func (r *DataReader) Read(ctx context.Context, path string) (*dataset.Frame, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve path %s", path)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, errors.InputFileMissing(absPath)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".csv":
		rows, err = r.readCSV(absPath)
	case ".xlsx", ".xlsm":
		rows, err = r.readExcel(absPath)
	default:
		return nil, errors.InputUnsupported(absPath)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InputFileEmpty(absPath)
	}

	frame, err := buildFrame(rows)
	if err != nil {
		return nil, err
	}

	r.log.Info("dataset loaded successfully: %d rows, %d columns (%s)",
		frame.RowCount(), len(frame.Columns()), absPath)
	return frame, nil
}

func (r *DataReader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV file %s", path)
	}
	return rows, nil
}

func (r *DataReader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InputFileEmpty(path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return rows, nil
}

// buildFrame converts raw string rows into a typed frame. A column becomes
// numeric when every non-blank cell parses as a number; everything else
// stays categorical.
func buildFrame(rows [][]string) (*dataset.Frame, error) {
	headers := rows[0]
	dataRows := rows[1:]
	frame := dataset.NewFrame(len(dataRows))

	for col, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}

		raw := make([]string, len(dataRows))
		for i, row := range dataRows {
			if col < len(row) {
				raw[i] = strings.TrimSpace(row[col])
			}
		}

		if numeric, ok := parseNumeric(raw); ok {
			if err := frame.SetNumeric(name, numeric); err != nil {
				return nil, errors.Wrapf(err, "failed to add column %s", name)
			}
			continue
		}
		if err := frame.SetLabels(name, raw); err != nil {
			return nil, errors.Wrapf(err, "failed to add column %s", name)
		}
	}

	return frame, nil
}

func parseNumeric(raw []string) ([]float64, bool) {
	values := make([]float64, len(raw))
	seen := false
	for i, cell := range raw {
		if cell == "" || strings.EqualFold(cell, "na") || strings.EqualFold(cell, "nan") {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		seen = true
	}
	// A column of only blanks carries no numeric information.
	return values, seen
}
