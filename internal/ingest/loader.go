package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"

	"github.com/xuri/excelize/v2"
)

// allowedExtensions the loader accepts.
var allowedExtensions = map[string]struct{}{
	".csv": {}, ".xlsx": {}, ".xls": {},
}

// Loader turns an uploaded file into the raw dataset generation. The core
// engine only ever sees the resulting Frame.
type Loader struct {
	maxFileSizeMB int
}

func NewLoader(maxFileSizeMB int) *Loader {
	return &Loader{maxFileSizeMB: maxFileSizeMB}
}

// Load validates and parses the uploaded bytes.
func (l *Loader) Load(filename string, content []byte) (*dataset.Frame, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, apperror.NewValidation("file", fmt.Sprintf("invalid file type %s, allowed: .csv, .xlsx, .xls", ext))
	}
	sizeMB := float64(len(content)) / (1024 * 1024)
	if sizeMB > float64(l.maxFileSizeMB) {
		return nil, apperror.NewValidation("file", fmt.Sprintf("file too large (%.2f MB), maximum %d MB", sizeMB, l.maxFileSizeMB))
	}

	var (
		header []string
		cells  [][]string
		err    error
	)
	if ext == ".csv" {
		header, cells, err = readCSV(content)
	} else {
		header, cells, err = readExcel(content)
	}
	if err != nil {
		return nil, apperror.NewValidation("file", err.Error())
	}
	if len(header) == 0 {
		return nil, apperror.NewValidation("file", "no columns found")
	}
	if len(cells) == 0 {
		return nil, apperror.NewValidation("file", "no data rows found")
	}
	return dataset.New(header, cells), nil
}

func readCSV(content []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv file")
	}
	return records[0], records[1:], nil
}

func readExcel(content []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty worksheet")
	}
	return rows[0], rows[1:], nil
}
