package domain

import "time"

type Accessory struct {
	ID              int64     `json:"id"`
	StyleNumber     int       `json:"style_number"`
	AccessoryNumber string    `json:"accessory_number"`
	AccessoryName   string    `json:"accessory_name"`
	AccessoryType   string    `json:"accessory_type"`
	AccessoryImage  string    `json:"accessory_image"`
	StockUnit       int       `json:"stock_unit"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AccessoryImportRow struct {
	StyleNumber     int    `json:"style_number"`
	AccessoryNumber string `json:"accessory_number"`
	AccessoryName   string `json:"accessory_name"`
	AccessoryType   string `json:"accessory_type"`
	AccessoryImage  string `json:"accessory_image"`
}
