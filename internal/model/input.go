package model

import (
	"bytes"
	"encoding/json"
)

// PriceInput is the inbound priceData payload from a client. The wire shape
// is either a bare array of points or an object carrying a current price
// with an optional embedded history.
type PriceInput struct {
	CurrentPrice float64     `json:"currentPrice"`
	Timestamp    int64       `json:"timestamp"` // epoch milliseconds
	Historical   PriceSeries `json:"historicalData"`
	Raw          PriceSeries `json:"-"` // set when the payload was a bare array
}

// UnmarshalJSON accepts both payload shapes.
func (in *PriceInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &in.Raw)
	}
	type alias PriceInput // avoid recursing into this method
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*in = PriceInput(obj)
	return nil
}

// Empty reports whether the input carries nothing to resolve from.
func (in *PriceInput) Empty() bool {
	return in == nil ||
		(len(in.Raw) == 0 && len(in.Historical) == 0 && in.CurrentPrice == 0)
}
