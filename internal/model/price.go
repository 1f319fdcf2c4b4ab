package model

import "time"

// AssetClass distinguishes the two supported asset families. The class
// drives the synthetic volatility constant and display rounding.
type AssetClass string

const (
	ClassCrypto AssetClass = "crypto"
	ClassForex  AssetClass = "forex"
)

// ParseAssetClass normalizes a user-supplied asset type string.
// Anything that is not "forex" falls back to crypto, the default class.
func ParseAssetClass(s string) AssetClass {
	if AssetClass(s) == ClassForex {
		return ClassForex
	}
	return ClassCrypto
}

// Decimals returns the display precision for the class.
func (c AssetClass) Decimals() int32 {
	if c == ClassForex {
		return 4
	}
	return 2
}

// PricePoint is a single daily observation in a price series.
// Timestamp is epoch milliseconds; Date is the pre-formatted display label.
type PricePoint struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// Time converts the millisecond timestamp back to a time.Time.
func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// DisplayDate formats a millisecond timestamp as a chart axis label.
func DisplayDate(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 2")
}

// PriceSeries is an ordered sequence of points, chronological ascending.
// 30 entries is the convention for a chart window but is not enforced.
type PriceSeries []PricePoint

// Prices extracts the raw price column.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// AssetQuery identifies one asset history request.
type AssetQuery struct {
	Asset        string     `json:"asset"` // lowercase identifier
	Class        AssetClass `json:"type"`
	LookbackDays int        `json:"lookback_days"`
}

// DefaultLookbackDays is the fixed lookback window for chart history.
const DefaultLookbackDays = 30
