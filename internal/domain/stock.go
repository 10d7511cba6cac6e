package domain

import "time"

// Unit tags every stored quantity. The main fabric ledger is meter-denominated;
// store2 balances and operator entry during an add are kilogram-denominated.
type Unit string

const (
	UnitMeter Unit = "METER"
	UnitKG    Unit = "KG"
	UnitPiece Unit = "PIECE"
)

type FabricStock struct {
	ID             int64     `json:"id"`
	FabricNumber   int       `json:"fabric_number"`
	FabricName     string    `json:"fabric_name"`
	AvailableStock float64   `json:"available_stock"`
	Unit           Unit      `json:"unit"`
	Location       string    `json:"location"`
	StyleNumbers   []int     `json:"style_numbers"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Store2Stock is the secondary-warehouse ledger. Transfers into the main
// store always consume the entire balance.
type Store2Stock struct {
	ID             int64     `json:"id"`
	FabricNumber   int       `json:"fabric_number"`
	FabricName     string    `json:"fabric_name"`
	AvailableStock float64   `json:"available_stock"`
	Unit           Unit      `json:"unit"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FabricRelation stores the meter-per-kilogram conversion for a fabric.
// FabricInKG is 1 by convention; FabricInMeter must be > 0 to be usable.
type FabricRelation struct {
	ID            int64     `json:"id"`
	FabricNumber  int       `json:"fabric_number"`
	FabricInKG    float64   `json:"fabric_in_KG"`
	FabricInMeter float64   `json:"fabric_in_meter"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r FabricRelation) Usable() bool {
	return r.FabricInMeter > 0
}

type StockImportRow struct {
	FabricName   string `json:"fabric_name"`
	FabricNumber int    `json:"fabric_number"`
	StyleNumbers []int  `json:"style_numbers"`
}

type StockImportResult struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

type RelationImportRow struct {
	FabricNumber  int     `json:"fabric_number"`
	FabricInKG    float64 `json:"fabric_in_KG"`
	FabricInMeter float64 `json:"fabric_in_meter"`
}

type LowStockRow struct {
	FabricNumber   int     `json:"fabric_number"`
	FabricName     string  `json:"fabric_name"`
	AvailableStock float64 `json:"available_stock"`
	Unit           Unit    `json:"unit"`
	Location       string  `json:"location"`
	Needed         float64 `json:"needed"`
}

type PurchaseRecord struct {
	ID             int64     `json:"id"`
	FabricNumber   int       `json:"fabric_number"`
	Source         string    `json:"source"`
	QuantityKG     float64   `json:"quantity_kg"`
	QuantityMeters float64   `json:"quantity_meters"`
	RatioUsed      float64   `json:"ratio_used"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}
