package stock

import (
	"fmt"
	"strings"

	"rawstock/internal/domain"
)

// Band names the size grouping a garment size falls into for fabric
// consumption lookups.
type Band string

const (
	BandXXSXS  Band = "xxs_xs"
	BandSM     Band = "s_m"
	BandLXL    Band = "l_xl"
	Band2XL3XL Band = "2xl_3xl"
	Band4XL5XL Band = "4xl_5xl"

	// Accessory tables only distinguish two halves of the size range.
	BandXXSM Band = "xxs_m"
	BandL5XL Band = "l_5xl"
)

// NormalizeSize canonicalizes an operator- or scanner-provided size label.
func NormalizeSize(raw string) domain.Size {
	return domain.Size(strings.ToUpper(strings.TrimSpace(raw)))
}

// FabricBand maps a size to its 5-band fabric consumption column. Unknown
// sizes are an error so a typo'd scan never silently deducts the wrong band.
func FabricBand(size domain.Size) (Band, error) {
	switch size {
	case domain.SizeXXS, domain.SizeXS:
		return BandXXSXS, nil
	case domain.SizeS, domain.SizeM:
		return BandSM, nil
	case domain.SizeL, domain.SizeXL:
		return BandLXL, nil
	case domain.Size2XL, domain.Size3XL:
		return Band2XL3XL, nil
	case domain.Size4XL, domain.Size5XL:
		return Band4XL5XL, nil
	}
	return "", fmt.Errorf("unknown size %q", string(size))
}

// AccessoryBand maps a size to the coarse 2-band accessory column.
func AccessoryBand(size domain.Size) (Band, error) {
	switch size {
	case domain.SizeXXS, domain.SizeXS, domain.SizeS, domain.SizeM:
		return BandXXSM, nil
	case domain.SizeL, domain.SizeXL, domain.Size2XL, domain.Size3XL,
		domain.Size4XL, domain.Size5XL:
		return BandL5XL, nil
	}
	return "", fmt.Errorf("unknown size %q", string(size))
}

// AverageForSize resolves a fabric's per-unit consumption for the given size.
func AverageForSize(avg domain.FabricAverage, size domain.Size) (float64, error) {
	band, err := FabricBand(size)
	if err != nil {
		return 0, err
	}
	switch band {
	case BandXXSXS:
		return avg.AverageXXSXS, nil
	case BandSM:
		return avg.AverageSM, nil
	case BandLXL:
		return avg.AverageLXL, nil
	case Band2XL3XL:
		return avg.Average2XL3XL, nil
	default:
		return avg.Average4XL5XL, nil
	}
}

// AccessoryAverageForSize resolves an accessory's per-unit consumption.
func AccessoryAverageForSize(avg domain.AccessoryAverage, size domain.Size) (float64, error) {
	band, err := AccessoryBand(size)
	if err != nil {
		return 0, err
	}
	if band == BandXXSM {
		return avg.AverageXXSM, nil
	}
	return avg.AverageL5XL, nil
}
