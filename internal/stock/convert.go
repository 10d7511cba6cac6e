package stock

import "github.com/shopspring/decimal"

// MetersFromKg converts an operator-entered kilogram quantity into the
// ledger's meter denomination using the fabric's stored ratio. The result is
// deliberately not rounded; only persisted ratios are.
func MetersFromKg(kg, ratioMetersPerKg float64) float64 {
	return kg * ratioMetersPerKg
}

// RatioMetersPerKg derives a meters-per-kilogram ratio from raw operator
// units, rounded to 2 decimals as stored relations are. kg must be positive;
// otherwise ok is false and the caller must fall back to manual entry.
func RatioMetersPerKg(meters, kg float64) (ratio float64, ok bool) {
	if kg <= 0 {
		return 0, false
	}
	d := decimal.NewFromFloat(meters).
		Div(decimal.NewFromFloat(kg)).
		Round(2)
	ratio, _ = d.Float64()
	return ratio, true
}

// FormatRatio renders a ratio the way it is displayed and persisted.
func FormatRatio(ratio float64) string {
	return decimal.NewFromFloat(ratio).Round(2).StringFixed(2)
}
