package domain

import "time"

// Size labels accepted by the scan service and the ship flows.
type Size string

const (
	SizeXXS Size = "XXS"
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	Size2XL Size = "2XL"
	Size3XL Size = "3XL"
	Size4XL Size = "4XL"
	Size5XL Size = "5XL"
)

// ScannedOrder is what the external scan service reports for an order id.
type ScannedOrder struct {
	OrderID     int64 `json:"order_id"`
	StyleNumber int   `json:"style_number"`
	Size        Size  `json:"size"`
}

type ItemStatus string

const (
	StatusApplied ItemStatus = "applied"
	StatusSkipped ItemStatus = "skipped"
	StatusFailed  ItemStatus = "failed"
)

// FabricDeduction records one fabric's ledger movement within a ship.
// LowStock flags balances that ended at or under the reorder threshold.
type FabricDeduction struct {
	FabricNo int        `json:"fabric_no"`
	Average  float64    `json:"average"`
	Before   float64    `json:"before"`
	After    float64    `json:"after"`
	Clamped  bool       `json:"clamped"`
	LowStock bool       `json:"low_stock,omitempty"`
	Status   ItemStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
}

// AccessoryDeduction records one accessory's piece movement within a ship.
type AccessoryDeduction struct {
	AccessoryNo string     `json:"accessory_no"`
	Average     float64    `json:"average"`
	Before      int        `json:"before"`
	After       int        `json:"after"`
	Status      ItemStatus `json:"status"`
	Reason      string     `json:"reason,omitempty"`
}

// ShipOutcome is the typed per-order result of a ship operation. StyleID is
// best-effort catalogue enrichment and may be zero.
type ShipOutcome struct {
	OrderID     int64                `json:"order_id,omitempty"`
	StyleNumber int                  `json:"style_number,omitempty"`
	StyleID     int64                `json:"style_id,omitempty"`
	Size        Size                 `json:"size,omitempty"`
	Status      ItemStatus           `json:"status"`
	Reason      string               `json:"reason,omitempty"`
	Deductions  []FabricDeduction    `json:"deductions,omitempty"`
	Accessories []AccessoryDeduction `json:"accessories,omitempty"`
}

// BatchSummary aggregates a bulk ship. All orders settle before it is built;
// one order's failure never stops the others.
type BatchSummary struct {
	BatchKey  string        `json:"batch_key"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Outcomes  []ShipOutcome `json:"outcomes"`
	CreatedAt time.Time     `json:"created_at"`
}

type AddSource string

const (
	SourceVendor AddSource = "Vendor"
	SourceStore2 AddSource = "Store2"
)

// AddStockInput is the add operation as the operator submits it. Quantity is
// interpreted in KG when a relation exists, otherwise MeterUnit/KgUnit seed a
// new relation and MeterUnit is added verbatim. Store2 ignores all three and
// transfers the entire store2 balance.
type AddStockInput struct {
	FabricNumber int       `json:"fabric_number"`
	Source       AddSource `json:"fabric_source"`
	Quantity     float64   `json:"quantity"`
	KgUnit       float64   `json:"kg_unit"`
	MeterUnit    float64   `json:"meter_unit"`
	Location     string    `json:"location"`
}

// AddStockResult reports the resolved movement of an add operation.
type AddStockResult struct {
	Stock           FabricStock     `json:"stock"`
	AddedMeters     float64         `json:"added_meters"`
	RelationCreated *FabricRelation `json:"relation_created,omitempty"`
	Store2Cleared   bool            `json:"store2_cleared"`
}
