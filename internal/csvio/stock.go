package csvio

import (
	"fmt"
	"io"

	"rawstock/internal/domain"
)

// ParseStockRows reads the fabric stock upload. Expected columns are
// "Fabric Name", "Fabric #" and "Style #'s" (comma-separated style numbers).
func ParseStockRows(reader io.Reader, filename string) ([]domain.StockImportRow, error) {
	rows, err := Rows(reader, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upload is empty")
	}

	colMap := mapColumns(rows[0])
	nameIdx, ok := columnIndex(colMap, "fabric name")
	if !ok {
		return nil, fmt.Errorf("missing required column: Fabric Name")
	}
	numberIdx, ok := columnIndex(colMap, "fabric #", "fabric number")
	if !ok {
		return nil, fmt.Errorf("missing required column: Fabric #")
	}
	stylesIdx, _ := columnIndex(colMap, "style #s", "style numbers")

	result := make([]domain.StockImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		name := readCell(cells, nameIdx)
		rawNumber := readCell(cells, numberIdx)
		if name == "" && rawNumber == "" {
			continue
		}

		number, err := parseInt(rawNumber)
		if err != nil {
			return nil, fmt.Errorf("row %d invalid fabric number: %w", index+1, err)
		}

		var styles []int
		if stylesIdx >= 0 {
			styles, err = parseIntList(readCell(cells, stylesIdx))
			if err != nil {
				return nil, fmt.Errorf("row %d invalid style numbers: %w", index+1, err)
			}
		}

		result = append(result, domain.StockImportRow{
			FabricName:   name,
			FabricNumber: number,
			StyleNumbers: styles,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("upload has no valid data rows")
	}
	return result, nil
}
