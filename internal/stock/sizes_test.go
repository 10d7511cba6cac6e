package stock

import (
	"testing"

	"rawstock/internal/domain"
)

func TestFabricBand(t *testing.T) {
	tests := []struct {
		size domain.Size
		want Band
	}{
		{domain.SizeXXS, BandXXSXS},
		{domain.SizeXS, BandXXSXS},
		{domain.SizeS, BandSM},
		{domain.SizeM, BandSM},
		{domain.SizeL, BandLXL},
		{domain.SizeXL, BandLXL},
		{domain.Size2XL, Band2XL3XL},
		{domain.Size3XL, Band2XL3XL},
		{domain.Size4XL, Band4XL5XL},
		{domain.Size5XL, Band4XL5XL},
	}
	for _, tt := range tests {
		got, err := FabricBand(tt.size)
		if err != nil {
			t.Fatalf("FabricBand(%s): %v", tt.size, err)
		}
		if got != tt.want {
			t.Fatalf("FabricBand(%s) = %s, want %s", tt.size, got, tt.want)
		}
	}
	if _, err := FabricBand("XXXL"); err == nil {
		t.Fatal("FabricBand accepted unknown size")
	}
}

func TestAccessoryBand(t *testing.T) {
	small := []domain.Size{domain.SizeXXS, domain.SizeXS, domain.SizeS, domain.SizeM}
	for _, s := range small {
		got, err := AccessoryBand(s)
		if err != nil || got != BandXXSM {
			t.Fatalf("AccessoryBand(%s) = %s, %v; want %s", s, got, err, BandXXSM)
		}
	}
	large := []domain.Size{domain.SizeL, domain.SizeXL, domain.Size2XL, domain.Size3XL, domain.Size4XL, domain.Size5XL}
	for _, s := range large {
		got, err := AccessoryBand(s)
		if err != nil || got != BandL5XL {
			t.Fatalf("AccessoryBand(%s) = %s, %v; want %s", s, got, err, BandL5XL)
		}
	}
	if _, err := AccessoryBand("SM"); err == nil {
		t.Fatal("AccessoryBand accepted unknown size")
	}
}

func TestAverageForSize(t *testing.T) {
	avg := domain.FabricAverage{
		StyleNumber:   4512,
		FabricNo:      88,
		AverageXXSXS:  1.1,
		AverageSM:     1.2,
		AverageLXL:    1.3,
		Average2XL3XL: 1.4,
		Average4XL5XL: 1.5,
	}
	tests := []struct {
		size domain.Size
		want float64
	}{
		{domain.SizeXS, 1.1},
		{domain.SizeM, 1.2},
		{domain.SizeL, 1.3},
		{domain.Size3XL, 1.4},
		{domain.Size5XL, 1.5},
	}
	for _, tt := range tests {
		got, err := AverageForSize(avg, tt.size)
		if err != nil {
			t.Fatalf("AverageForSize(%s): %v", tt.size, err)
		}
		if got != tt.want {
			t.Fatalf("AverageForSize(%s) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestNormalizeSize(t *testing.T) {
	if got := NormalizeSize("  xl "); got != domain.SizeXL {
		t.Fatalf("NormalizeSize = %q, want XL", got)
	}
	if got := NormalizeSize("2xl"); got != domain.Size2XL {
		t.Fatalf("NormalizeSize = %q, want 2XL", got)
	}
}
