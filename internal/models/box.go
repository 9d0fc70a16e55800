package models

import (
	"github.com/shopspring/decimal"
)

// BoxOption is a concrete packing choice for an order detail
type BoxOption struct {
	BoxOptionID int64           `json:"boxOptionId"`
	BoxName     string          `json:"boxName"`
	MaxVolume   float64         `json:"maxVolume"`
	TotalVolume float64         `json:"totalVolume"`
	Price       decimal.Decimal `json:"price"`
	Fishes      []FishQuantity  `json:"fishes"`
}

// FishQuantity references a koi fish packed into a box option
type FishQuantity struct {
	FishID   int64 `json:"fishId"`
	Quantity int   `json:"quantity"`
}

// FishCount returns the number of fish packed in the box
func (b BoxOption) FishCount() int {
	total := 0
	for _, f := range b.Fishes {
		total += f.Quantity
	}
	return total
}

// Box is a catalog box type shown on the public price table
type Box struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	MaxVolume float64         `json:"maxVolume"`
	Price     decimal.Decimal `json:"price"`
}

// KoiFish is a fish record referenced by a box option
type KoiFish struct {
	ID              int64   `json:"id"`
	FishDescription string  `json:"fishDescription"`
	Size            float64 `json:"size"`
}
