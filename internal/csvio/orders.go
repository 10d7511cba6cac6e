package csvio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseOrderIDs reads the bulk-ship order list. The sheet has a single
// order_id column; a header row is optional and detected by its first cell
// not being numeric. Order of appearance is preserved.
func ParseOrderIDs(reader io.Reader, filename string) ([]int64, error) {
	rows, err := Rows(reader, filename)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for index, cells := range rows {
		raw := readCell(cells, 0)
		if raw == "" {
			continue
		}
		if index == 0 && !isNumeric(raw) {
			continue
		}
		id, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d invalid order id %q", index+1, raw)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("upload has no order ids")
	}
	return ids, nil
}

func isNumeric(raw string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	return err == nil
}
