package domain

import "time"

type StyleFabric struct {
	Slot        int    `json:"slot"`
	FabricNo    int    `json:"fabric_no"`
	FabricName  string `json:"fabric_name"`
	FabricImage string `json:"fabric_image"`
}

type StyleAccessory struct {
	Slot           int    `json:"slot"`
	AccessoryNo    string `json:"accessory_no"`
	AccessoryName  string `json:"accessory_name"`
	AccessoryType  string `json:"accessory_type"`
	AccessoryImage string `json:"accessory_image"`
}

type StyleDetail struct {
	ID            int64            `json:"id"`
	StyleNumber   int              `json:"style_number"`
	PatternNumber string           `json:"pattern_number"`
	ArticleType   string           `json:"article_type"`
	StyleImage    string           `json:"style_image"`
	Fabrics       []StyleFabric    `json:"fabrics"`
	Accessories   []StyleAccessory `json:"accessories"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// FabricAverage holds the 5-band consumption table for one fabric of one
// style, keyed by fabric number rather than slot position.
type FabricAverage struct {
	StyleNumber   int     `json:"style_number"`
	FabricNo      int     `json:"fabric_no"`
	AverageXXSXS  float64 `json:"average_xxs_xs"`
	AverageSM     float64 `json:"average_s_m"`
	AverageLXL    float64 `json:"average_l_xl"`
	Average2XL3XL float64 `json:"average_2xl_3xl"`
	Average4XL5XL float64 `json:"average_4xl_5xl"`
	Width         string  `json:"width"`
}

// AccessoryAverage holds the legacy 2-band table used by accessory flows.
type AccessoryAverage struct {
	StyleNumber int     `json:"style_number"`
	AccessoryNo string  `json:"accessory_no"`
	AverageXXSM float64 `json:"average_xxs_m"`
	AverageL5XL float64 `json:"average_l_5xl"`
}

type StyleImportRow struct {
	StyleNumber   int              `json:"style_number"`
	PatternNumber string           `json:"pattern_number"`
	ArticleType   string           `json:"article_type"`
	StyleImage    string           `json:"style_image"`
	Fabrics       []StyleFabric    `json:"fabrics"`
	Accessories   []StyleAccessory `json:"accessories"`
}

type UpsertResult struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Updated int `json:"updated"`
}
