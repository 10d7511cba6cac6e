package csvio

import (
	"bytes"
	"strings"
	"testing"

	"rawstock/internal/domain"
)

func TestParseStockRows(t *testing.T) {
	input := strings.Join([]string{
		`Fabric Name,Fabric #,Style #'s`,
		`Navy Jersey,88,"4512, 4587"`,
		`,,`,
		`Rib Knit,102,`,
	}, "\n")

	rows, err := ParseStockRows(strings.NewReader(input), "stock.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := domain.StockImportRow{FabricName: "Navy Jersey", FabricNumber: 88, StyleNumbers: []int{4512, 4587}}
	if rows[0].FabricName != want.FabricName || rows[0].FabricNumber != want.FabricNumber {
		t.Fatalf("row 0 = %+v, want %+v", rows[0], want)
	}
	if len(rows[0].StyleNumbers) != 2 || rows[0].StyleNumbers[0] != 4512 {
		t.Fatalf("style numbers = %v", rows[0].StyleNumbers)
	}
	if rows[1].StyleNumbers != nil {
		t.Fatalf("empty style list should stay nil, got %v", rows[1].StyleNumbers)
	}
}

func TestParseStockRowsMissingColumn(t *testing.T) {
	input := "Fabric Name,Something\nNavy,1\n"
	if _, err := ParseStockRows(strings.NewReader(input), "stock.csv"); err == nil {
		t.Fatal("expected error for missing Fabric # column")
	}
}

func TestParseStyleRowsSlotEmission(t *testing.T) {
	input := strings.Join([]string{
		"Style Number,Pattern Number,Article Type,Style Image,Fabric 1,Fabric 1 Name,Fabric 1 Image,Fabric 2,Fabric 2 Name,Accessory 1,Access. 1 Name,Access. 1 Type",
		"4512,P-9,Hoodie,img.png,88,Navy Jersey,f.png,,ignored,77,Zipper,metal",
	}, "\n")

	rows, err := ParseStyleRows(strings.NewReader(input), "styles.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.StyleNumber != 4512 || row.PatternNumber != "P-9" || row.ArticleType != "Hoodie" {
		t.Fatalf("row = %+v", row)
	}
	if len(row.Fabrics) != 1 {
		t.Fatalf("fabric slot 2 has empty number and must not be emitted; got %d fabrics", len(row.Fabrics))
	}
	if row.Fabrics[0].Slot != 1 || row.Fabrics[0].FabricNo != 88 || row.Fabrics[0].FabricName != "Navy Jersey" {
		t.Fatalf("fabric slot = %+v", row.Fabrics[0])
	}
	if len(row.Accessories) != 1 {
		t.Fatalf("got %d accessories, want 1", len(row.Accessories))
	}
	acc := row.Accessories[0]
	if acc.AccessoryNo != "A-77" || acc.AccessoryName != "Zipper" || acc.AccessoryType != "metal" {
		t.Fatalf("accessory = %+v", acc)
	}
	if acc.AccessoryImage != "" {
		t.Fatalf("missing image column must become empty, got %q", acc.AccessoryImage)
	}
}

func TestParseAverageRows(t *testing.T) {
	input := strings.Join([]string{
		"Style Number,Pattern #,Fabric 1 XXS-XS,Fabric 1 S-M,Fabric 1 L-XL,Fabric 1 2XL-3XL,Fabric 1 4XL-5XL,Fabric 1 Width,Fabric 2 XXS-XS,Fabric 2 S-M,Accessory 1 XXS-M,Accessory 1 L-5XL",
		"4512,P-9,1.1,1.2,1.3,1.4,1.5,150cm,,,2,3",
	}, "\n")

	rows, err := ParseAverageRows(strings.NewReader(input), "averages.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if len(row.Fabrics) != 1 {
		t.Fatalf("fabric slot 2 is all-empty and must not be emitted; got %d", len(row.Fabrics))
	}
	fa := row.Fabrics[0]
	if fa.Slot != 1 || fa.AverageXXSXS != 1.1 || fa.Average4XL5XL != 1.5 || fa.Width != "150cm" {
		t.Fatalf("fabric slot = %+v", fa)
	}
	if len(row.Accessories) != 1 || row.Accessories[0].AverageXXSM != 2 || row.Accessories[0].AverageL5XL != 3 {
		t.Fatalf("accessories = %+v", row.Accessories)
	}
}

func TestParseRelationRows(t *testing.T) {
	input := "fabric_number,fabric_in_KG,fabric_in_meter\n88,1,3.2\n102,,2.75\n"
	rows, err := ParseRelationRows(strings.NewReader(input), "relations.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].FabricNumber != 88 || rows[0].FabricInMeter != 3.2 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].FabricInKG != 1 {
		t.Fatalf("empty kg must default to 1, got %v", rows[1].FabricInKG)
	}
}

func TestParseOrderIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"with header", "order_id\n1001\n1002\n", []int64{1001, 1002}},
		{"headerless", "1001\n1002\n1003\n", []int64{1001, 1002, 1003}},
		{"blank lines skipped", "order_id\n1001\n\n1002\n", []int64{1001, 1002}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderIDs(strings.NewReader(tt.input), "orders.csv")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	if _, err := ParseOrderIDs(strings.NewReader("order_id\nabc\n"), "orders.csv"); err == nil {
		t.Fatal("expected error for non-numeric order id")
	}
}

func TestParseAccessoryRows(t *testing.T) {
	input := strings.Join([]string{
		"Style Number,Accessory 1,Access. 1 Name,Access. 1 Type,Access. 1 Image",
		"4512,77,Zipper,metal,z.png",
		"4512,A-78,Button,,",
	}, "\n")

	rows, err := ParseAccessoryRows(strings.NewReader(input), "accessories.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].AccessoryNumber != "A-77" {
		t.Fatalf("bare number must gain the A- prefix, got %q", rows[0].AccessoryNumber)
	}
	if rows[1].AccessoryNumber != "A-78" {
		t.Fatalf("prefixed number must pass through, got %q", rows[1].AccessoryNumber)
	}
}

func TestWriteLowStockReport(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.LowStockRow{
		{FabricNumber: 88, FabricName: "Navy Jersey", AvailableStock: 12.5, Unit: domain.UnitMeter, Location: "A1", Needed: 7.5},
	}
	if err := WriteLowStockReport(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Fabric #,Fabric Name,Available Stock,Unit,Location,Needed" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "88,Navy Jersey,12.50,METER,A1,7.50" {
		t.Fatalf("row = %q", lines[1])
	}
}
