package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"rawstock/internal/domain"
)

var lowStockHeader = []string{"Fabric #", "Fabric Name", "Available Stock", "Unit", "Location", "Needed"}

// WriteLowStockReport renders the low stock rows as a CSV download with a
// fixed column order.
func WriteLowStockReport(w io.Writer, rows []domain.LowStockRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(lowStockHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.FabricNumber),
			row.FabricName,
			strconv.FormatFloat(row.AvailableStock, 'f', 2, 64),
			string(row.Unit),
			row.Location,
			strconv.FormatFloat(row.Needed, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
