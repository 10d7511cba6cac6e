// Package csvio parses the console's spreadsheet uploads and writes its CSV
// reports. Every upload endpoint accepts both .csv and .xlsx payloads; the
// two formats converge on a [][]string grid before any row transformation.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Rows reads a spreadsheet upload into a raw cell grid. The format is chosen
// by the uploaded filename's extension, defaulting to CSV.
func Rows(reader io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return excelRows(reader)
	default:
		return csvRows(reader)
	}
}

func csvRows(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func excelRows(reader io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	return rows, nil
}

// mapColumns resolves a header row into column indexes keyed by normalized
// header text. Duplicate headers keep the first occurrence.
func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		if _, exists := mapped[normalized]; !exists {
			mapped[normalized] = idx
		}
	}
	return mapped
}

// normalizeHeader lowercases a header and strips the punctuation variants the
// source sheets use ("Pattern #" and "Pattern Number" both resolve; "Access."
// loses its period).
func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.ReplaceAll(value, ".", "")
	value = strings.ReplaceAll(value, "'", "")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func columnIndex(colMap map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := colMap[name]; ok {
			return idx, true
		}
	}
	return -1, false
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("must be an integer")
	}
	return int(asFloat), nil
}

func parseFloat(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return parsed, nil
}

// parseIntList splits a comma-separated list of integers ("4512, 4587").
func parseIntList(raw string) ([]int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		n, err := parseInt(part)
		if err != nil {
			return nil, fmt.Errorf("list item %q: %w", strings.TrimSpace(part), err)
		}
		out = append(out, n)
	}
	return out, nil
}
