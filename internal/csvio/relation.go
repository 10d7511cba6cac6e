package csvio

import (
	"fmt"
	"io"

	"rawstock/internal/domain"
)

// ParseRelationRows reads the meter/kg relation upload. fabric_in_KG is
// conventionally 1 and defaults to it when the column is absent or empty.
func ParseRelationRows(reader io.Reader, filename string) ([]domain.RelationImportRow, error) {
	rows, err := Rows(reader, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upload is empty")
	}

	colMap := mapColumns(rows[0])
	numberIdx, ok := columnIndex(colMap, "fabric number", "fabric #")
	if !ok {
		return nil, fmt.Errorf("missing required column: fabric_number")
	}
	meterIdx, ok := columnIndex(colMap, "fabric in meter")
	if !ok {
		return nil, fmt.Errorf("missing required column: fabric_in_meter")
	}
	kgIdx, _ := columnIndex(colMap, "fabric in kg")

	result := make([]domain.RelationImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		rawNumber := readCell(cells, numberIdx)
		if rawNumber == "" {
			continue
		}
		number, err := parseInt(rawNumber)
		if err != nil {
			return nil, fmt.Errorf("row %d invalid fabric number: %w", index+1, err)
		}
		meter, err := parseFloat(readCell(cells, meterIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid fabric_in_meter: %w", index+1, err)
		}

		kg := 1.0
		if raw := readCell(cells, kgIdx); raw != "" {
			if kg, err = parseFloat(raw); err != nil {
				return nil, fmt.Errorf("row %d invalid fabric_in_KG: %w", index+1, err)
			}
		}

		result = append(result, domain.RelationImportRow{
			FabricNumber:  number,
			FabricInKG:    kg,
			FabricInMeter: meter,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("upload has no valid data rows")
	}
	return result, nil
}
