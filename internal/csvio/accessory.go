package csvio

import (
	"fmt"
	"io"
	"strings"

	"rawstock/internal/domain"
)

// AccessoryNumber canonicalizes an accessory identifier to its "A-" prefixed
// form. Already-prefixed values pass through unchanged.
func AccessoryNumber(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToUpper(value), "A-") {
		return "A-" + value[2:]
	}
	return "A-" + value
}

// ParseAccessoryRows reads the accessory upload. One accessory per row; the
// accessory number is stored "A-" prefixed.
func ParseAccessoryRows(reader io.Reader, filename string) ([]domain.AccessoryImportRow, error) {
	rows, err := Rows(reader, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upload is empty")
	}

	colMap := mapColumns(rows[0])
	styleIdx, ok := columnIndex(colMap, "style number", "style #")
	if !ok {
		return nil, fmt.Errorf("missing required column: Style Number")
	}
	numberIdx, ok := columnIndex(colMap, "accessory 1", "accessory number", "accessory #")
	if !ok {
		return nil, fmt.Errorf("missing required column: Accessory 1")
	}
	nameIdx, _ := columnIndex(colMap, "access 1 name", "accessory name")
	typeIdx, _ := columnIndex(colMap, "access 1 type", "accessory type")
	imageIdx, _ := columnIndex(colMap, "access 1 image", "accessory image")

	result := make([]domain.AccessoryImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		rawStyle := readCell(cells, styleIdx)
		rawNumber := readCell(cells, numberIdx)
		if rawStyle == "" && rawNumber == "" {
			continue
		}
		styleNumber, err := parseInt(rawStyle)
		if err != nil {
			return nil, fmt.Errorf("row %d invalid style number: %w", index+1, err)
		}
		if rawNumber == "" {
			return nil, fmt.Errorf("row %d missing accessory number", index+1)
		}

		result = append(result, domain.AccessoryImportRow{
			StyleNumber:     styleNumber,
			AccessoryNumber: AccessoryNumber(rawNumber),
			AccessoryName:   readCell(cells, nameIdx),
			AccessoryType:   readCell(cells, typeIdx),
			AccessoryImage:  readCell(cells, imageIdx),
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("upload has no valid data rows")
	}
	return result, nil
}
