package csvio

import (
	"fmt"
	"io"

	"rawstock/internal/domain"
)

const maxSlots = 3

// ParseStyleRows reads the style details upload. Each row carries up to three
// fabric slots and three accessory slots; a slot is emitted only when its
// number column is non-empty, and missing name or image cells become "".
func ParseStyleRows(reader io.Reader, filename string) ([]domain.StyleImportRow, error) {
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
	patternIdx, _ := columnIndex(colMap, "pattern number", "pattern #")
	articleIdx, _ := columnIndex(colMap, "article type")
	imageIdx, _ := columnIndex(colMap, "style image")

	result := make([]domain.StyleImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		rawStyle := readCell(cells, styleIdx)
		if rawStyle == "" {
			continue
		}
		styleNumber, err := parseInt(rawStyle)
		if err != nil {
			return nil, fmt.Errorf("row %d invalid style number: %w", index+1, err)
		}

		row := domain.StyleImportRow{
			StyleNumber:   styleNumber,
			PatternNumber: readCell(cells, patternIdx),
			ArticleType:   readCell(cells, articleIdx),
			StyleImage:    readCell(cells, imageIdx),
		}

		for slot := 1; slot <= maxSlots; slot++ {
			numIdx, _ := columnIndex(colMap, fmt.Sprintf("fabric %d", slot))
			rawNo := readCell(cells, numIdx)
			if rawNo == "" {
				continue
			}
			fabricNo, err := parseInt(rawNo)
			if err != nil {
				return nil, fmt.Errorf("row %d invalid fabric %d: %w", index+1, slot, err)
			}
			nameIdx, _ := columnIndex(colMap, fmt.Sprintf("fabric %d name", slot))
			imgIdx, _ := columnIndex(colMap, fmt.Sprintf("fabric %d image", slot))
			row.Fabrics = append(row.Fabrics, domain.StyleFabric{
				Slot:        slot,
				FabricNo:    fabricNo,
				FabricName:  readCell(cells, nameIdx),
				FabricImage: readCell(cells, imgIdx),
			})
		}

		for slot := 1; slot <= maxSlots; slot++ {
			numIdx, _ := columnIndex(colMap, fmt.Sprintf("accessory %d", slot))
			rawNo := readCell(cells, numIdx)
			if rawNo == "" {
				continue
			}
			nameIdx, _ := columnIndex(colMap, fmt.Sprintf("access %d name", slot), fmt.Sprintf("accessory %d name", slot))
			typeIdx, _ := columnIndex(colMap, fmt.Sprintf("access %d type", slot), fmt.Sprintf("accessory %d type", slot))
			imgIdx, _ := columnIndex(colMap, fmt.Sprintf("access %d image", slot), fmt.Sprintf("accessory %d image", slot))
			row.Accessories = append(row.Accessories, domain.StyleAccessory{
				Slot:           slot,
				AccessoryNo:    AccessoryNumber(rawNo),
				AccessoryName:  readCell(cells, nameIdx),
				AccessoryType:  readCell(cells, typeIdx),
				AccessoryImage: readCell(cells, imgIdx),
			})
		}

		result = append(result, row)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("upload has no valid data rows")
	}
	return result, nil
}
