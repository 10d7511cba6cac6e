package service

import (
	"testing"

	"rawstock/internal/csvio"
	"rawstock/internal/domain"
)

func TestJoinAverageRow(t *testing.T) {
	detail := domain.StyleDetail{
		StyleNumber: 4512,
		Fabrics: []domain.StyleFabric{
			{Slot: 1, FabricNo: 88},
			{Slot: 2, FabricNo: 102},
		},
		Accessories: []domain.StyleAccessory{
			{Slot: 1, AccessoryNo: "A-77"},
		},
	}
	row := csvio.AverageRow{
		StyleNumber: 4512,
		Fabrics: []csvio.SlotFabricAverage{
			{Slot: 1, AverageXXSXS: 1.1, AverageSM: 1.2, Width: "150cm"},
			{Slot: 2, AverageSM: 0.4},
		},
		Accessories: []csvio.SlotAccessoryAverage{
			{Slot: 1, AverageXXSM: 2, AverageL5XL: 3},
		},
	}

	fabrics, accessories, err := JoinAverageRow(row, detail)
	if err != nil {
		t.Fatal(err)
	}
	if len(fabrics) != 2 {
		t.Fatalf("got %d fabric averages, want 2", len(fabrics))
	}
	if fabrics[0].FabricNo != 88 || fabrics[0].AverageXXSXS != 1.1 || fabrics[0].Width != "150cm" {
		t.Fatalf("fabric 0 = %+v", fabrics[0])
	}
	if fabrics[1].FabricNo != 102 || fabrics[1].AverageSM != 0.4 {
		t.Fatalf("fabric 1 = %+v", fabrics[1])
	}
	if len(accessories) != 1 || accessories[0].AccessoryNo != "A-77" {
		t.Fatalf("accessories = %+v", accessories)
	}
}

func TestJoinAverageRowUnregisteredSlot(t *testing.T) {
	detail := domain.StyleDetail{
		StyleNumber: 4512,
		Fabrics:     []domain.StyleFabric{{Slot: 1, FabricNo: 88}},
	}
	row := csvio.AverageRow{
		StyleNumber: 4512,
		Fabrics:     []csvio.SlotFabricAverage{{Slot: 3, AverageSM: 1}},
	}
	if _, _, err := JoinAverageRow(row, detail); err == nil {
		t.Fatal("expected error for slot without a registered fabric")
	}
}
