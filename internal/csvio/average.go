package csvio

import (
	"fmt"
	"io"
)

// SlotFabricAverage is one fabric slot of the averages upload before it has
// been joined to a fabric number. The join happens at ingest against the
// style's fabric slots.
type SlotFabricAverage struct {
	Slot          int
	AverageXXSXS  float64
	AverageSM     float64
	AverageLXL    float64
	Average2XL3XL float64
	Average4XL5XL float64
	Width         string
}

type SlotAccessoryAverage struct {
	Slot        int
	AverageXXSM float64
	AverageL5XL float64
}

// AverageRow is one parsed row of the averages upload, still slot-addressed.
type AverageRow struct {
	StyleNumber   int
	PatternNumber string
	Fabrics       []SlotFabricAverage
	Accessories   []SlotAccessoryAverage
}

// ParseAverageRows reads the size-average upload. A fabric slot is emitted
// when its XXS-XS or S-M column is non-empty; an accessory slot when its
// XXS-M or L-5XL column is non-empty. Empty band cells parse as 0, which the
// ship flow later treats as "no figure for this band".
func ParseAverageRows(reader io.Reader, filename string) ([]AverageRow, error) {
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
	patternIdx, _ := columnIndex(colMap, "pattern #", "pattern number")

	result := make([]AverageRow, 0, len(rows)-1)
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

		row := AverageRow{
			StyleNumber:   styleNumber,
			PatternNumber: readCell(cells, patternIdx),
		}

		for slot := 1; slot <= maxSlots; slot++ {
			fa, present, err := parseFabricSlot(colMap, cells, slot)
			if err != nil {
				return nil, fmt.Errorf("row %d fabric %d: %w", index+1, slot, err)
			}
			if present {
				row.Fabrics = append(row.Fabrics, fa)
			}
		}
		for slot := 1; slot <= maxSlots; slot++ {
			aa, present, err := parseAccessorySlot(colMap, cells, slot)
			if err != nil {
				return nil, fmt.Errorf("row %d accessory %d: %w", index+1, slot, err)
			}
			if present {
				row.Accessories = append(row.Accessories, aa)
			}
		}

		result = append(result, row)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("upload has no valid data rows")
	}
	return result, nil
}

func parseFabricSlot(colMap map[string]int, cells []string, slot int) (SlotFabricAverage, bool, error) {
	bands := []string{"xxs-xs", "s-m", "l-xl", "2xl-3xl", "4xl-5xl"}
	raw := make([]string, len(bands))
	for i, band := range bands {
		idx, _ := columnIndex(colMap, fmt.Sprintf("fabric %d %s", slot, band))
		raw[i] = readCell(cells, idx)
	}
	if raw[0] == "" && raw[1] == "" {
		return SlotFabricAverage{}, false, nil
	}

	values := make([]float64, len(bands))
	for i, cell := range raw {
		if cell == "" {
			continue
		}
		v, err := parseFloat(cell)
		if err != nil {
			return SlotFabricAverage{}, false, fmt.Errorf("invalid %s average: %w", bands[i], err)
		}
		values[i] = v
	}

	widthIdx, _ := columnIndex(colMap, fmt.Sprintf("fabric %d width", slot))
	return SlotFabricAverage{
		Slot:          slot,
		AverageXXSXS:  values[0],
		AverageSM:     values[1],
		AverageLXL:    values[2],
		Average2XL3XL: values[3],
		Average4XL5XL: values[4],
		Width:         readCell(cells, widthIdx),
	}, true, nil
}

func parseAccessorySlot(colMap map[string]int, cells []string, slot int) (SlotAccessoryAverage, bool, error) {
	smallIdx, _ := columnIndex(colMap, fmt.Sprintf("accessory %d xxs-m", slot))
	largeIdx, _ := columnIndex(colMap, fmt.Sprintf("accessory %d l-5xl", slot))
	rawSmall := readCell(cells, smallIdx)
	rawLarge := readCell(cells, largeIdx)
	if rawSmall == "" && rawLarge == "" {
		return SlotAccessoryAverage{}, false, nil
	}

	out := SlotAccessoryAverage{Slot: slot}
	var err error
	if rawSmall != "" {
		if out.AverageXXSM, err = parseFloat(rawSmall); err != nil {
			return SlotAccessoryAverage{}, false, fmt.Errorf("invalid xxs-m average: %w", err)
		}
	}
	if rawLarge != "" {
		if out.AverageL5XL, err = parseFloat(rawLarge); err != nil {
			return SlotAccessoryAverage{}, false, fmt.Errorf("invalid l-5xl average: %w", err)
		}
	}
	return out, true, nil
}
