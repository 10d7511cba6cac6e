package stock

import (
	"math"

	"rawstock/internal/domain"
)

// Deduct applies one fabric's consumption against its current balance and
// returns the typed movement. Non-positive or NaN averages mean the style
// table has no figure for this band, which skips the fabric rather than
// failing the whole order.
func Deduct(fabricNo int, current, avg float64) domain.FabricDeduction {
	d := domain.FabricDeduction{
		FabricNo: fabricNo,
		Average:  avg,
		Before:   current,
		After:    current,
	}
	if math.IsNaN(avg) || avg <= 0 {
		d.Status = domain.StatusSkipped
		d.Reason = "no average for size band"
		return d
	}
	after := current - avg
	if after < 0 {
		after = 0
		d.Clamped = true
	}
	d.After = after
	d.LowStock = IsLowStock(after)
	d.Status = domain.StatusApplied
	return d
}

// DeductAll walks a style's fabric averages in order and chains the
// deductions through the balances map, so two slots sharing a fabric number
// each see the balance left by the previous one.
func DeductAll(balances map[int]float64, avgs []domain.FabricAverage, size domain.Size) ([]domain.FabricDeduction, error) {
	out := make([]domain.FabricDeduction, 0, len(avgs))
	for _, a := range avgs {
		per, err := AverageForSize(a, size)
		if err != nil {
			return nil, err
		}
		cur, ok := balances[a.FabricNo]
		if !ok {
			out = append(out, domain.FabricDeduction{
				FabricNo: a.FabricNo,
				Average:  per,
				Status:   domain.StatusFailed,
				Reason:   "fabric not in stock ledger",
			})
			continue
		}
		d := Deduct(a.FabricNo, cur, per)
		balances[a.FabricNo] = d.After
		out = append(out, d)
	}
	return out, nil
}

// AccessoryDeduct computes an accessory movement. Accessory stock is counted
// in whole pieces and is never clamped; insufficient stock fails the item.
func AccessoryDeduct(current int, avg float64) (after int, status domain.ItemStatus, reason string) {
	if math.IsNaN(avg) || avg <= 0 {
		return current, domain.StatusSkipped, "no average for size band"
	}
	need := int(math.Ceil(avg))
	if current-need < 0 {
		return current, domain.StatusFailed, "insufficient accessory stock"
	}
	return current - need, domain.StatusApplied, ""
}

// ResolveAdd turns an add request into a meter delta for the fabric ledger.
// When a usable relation exists the quantity is kilograms and converts
// through the relation; otherwise the raw meter figure is added and, when the
// kilogram figure permits, a new relation ratio is derived for the caller to
// persist.
func ResolveAdd(in domain.AddStockInput, rel *domain.FabricRelation) (meters float64, newRatio float64, createRelation bool) {
	if rel != nil && rel.Usable() {
		return MetersFromKg(in.Quantity, rel.FabricInMeter), 0, false
	}
	if ratio, ok := RatioMetersPerKg(in.MeterUnit, in.KgUnit); ok {
		return in.MeterUnit, ratio, true
	}
	return in.MeterUnit, 0, false
}

// LowStockThreshold is the balance at or below which a fabric appears on the
// low stock report.
const LowStockThreshold = 20.0

func IsLowStock(balance float64) bool {
	return balance <= LowStockThreshold
}
