package stock

import (
	"math"
	"testing"
)

func TestRatioMetersPerKg(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		kg     float64
		want   float64
		ok     bool
	}{
		{"even", 30, 10, 3, true},
		{"rounds to two decimals", 10, 3, 3.33, true},
		{"rounds half up", 7, 8, 0.88, true},
		{"zero kg", 10, 0, 0, false},
		{"negative kg", 10, -2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RatioMetersPerKg(tt.meters, tt.kg)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ratio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetersFromKg(t *testing.T) {
	if got := MetersFromKg(12.5, 3.2); math.Abs(got-40) > 1e-9 {
		t.Fatalf("MetersFromKg = %v, want 40", got)
	}
	if got := MetersFromKg(0, 3.2); got != 0 {
		t.Fatalf("MetersFromKg(0) = %v, want 0", got)
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(3.335); got != "3.34" {
		t.Fatalf("FormatRatio = %q, want %q", got, "3.34")
	}
	if got := FormatRatio(3); got != "3.00" {
		t.Fatalf("FormatRatio = %q, want %q", got, "3.00")
	}
}
