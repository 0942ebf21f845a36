package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sigmark/domain/bracket"
	"sigmark/internal"
	"sigmark/internal/errors"

	"github.com/xuri/excelize/v2"
)

var logger = internal.DefaultLogger.With("SampleReader")

// Required header columns, matched case-insensitively in any order
const (
	colBar     = "bar"
	colX       = "x"
	colY       = "y"
	colYErrTop = "yerr_top"
)

// MaxBars caps the bar index a sample table may reference
const MaxBars = 1024

// SampleReader loads per-bar sample tables from Excel or CSV files
type SampleReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string // empty means the first sheet
}

// NewSampleReader creates a reader; the file type is chosen by extension
func NewSampleReader(filePath string) *SampleReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SampleReader{filePath: filePath, fileType: fileType}
}

// WithSheet selects a named worksheet for xlsx input
func (r *SampleReader) WithSheet(sheet string) *SampleReader {
	r.sheet = sheet
	return r
}

// ReadBars reads the sample table and groups rows by their bar index.
// Bars are indexed 0..max(bar); indices with no rows yield empty bars.
// An index at or above MaxBars is rejected as INVALID_INPUT.
func (r *SampleReader) ReadBars() ([]bracket.Bar, error) {
	logger.Info("Reading %s file: %s", r.fileType, r.filePath)

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, errors.ReadError(r.filePath, err)
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s must have a header row and at least one data row", r.filePath))
	}

	return r.processRows(rows)
}

func (r *SampleReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	logger.Info("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *SampleReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows maps header columns and converts data rows into samples
func (r *SampleReader) processRows(rows [][]string) ([]bracket.Bar, error) {
	index := map[string]int{}
	for i, header := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{colBar, colX, colY, colYErrTop} {
		if _, ok := index[col]; !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("missing required column %q", col))
		}
	}

	type indexedSample struct {
		bar    int
		sample bracket.Sample
	}
	var samples []indexedSample
	maxBar := -1
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		line := i + 1 // 1-based, header is line 1

		barCell := cell(row, index[colBar])
		bar, err := strconv.Atoi(barCell)
		if err != nil || bar < 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: column %s: invalid bar index %q", line, colBar, barCell))
		}
		if bar >= MaxBars {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: column %s: bar index %d exceeds limit %d", line, colBar, bar, MaxBars-1))
		}

		var sample bracket.Sample
		fields := []struct {
			col string
			dst *float64
		}{
			{colX, &sample.X},
			{colY, &sample.Y},
			{colYErrTop, &sample.YErrTop},
		}
		for _, f := range fields {
			raw := cell(row, index[f.col])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.InvalidInput(fmt.Sprintf("row %d: column %s: invalid number %q", line, f.col, raw))
			}
			*f.dst = v
		}

		samples = append(samples, indexedSample{bar: bar, sample: sample})
		if bar > maxBar {
			maxBar = bar
		}
	}

	bars := make([]bracket.Bar, maxBar+1)
	for _, s := range samples {
		bars[s.bar].Samples = append(bars[s.bar].Samples, s.sample)
	}

	logger.Info("%s file processed (%d bars, %d data rows)", strings.ToUpper(r.fileType), len(bars), len(rows)-1)
	return bars, nil
}

// cell returns the trimmed value at column i; short rows read as empty
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
