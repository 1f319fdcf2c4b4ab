package model

import "time"

// Direction classifies the latest move of a series.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	// DirectionFlat exists for presentation but is currently unreachable:
	// the classifier groups zero change with up.
	DirectionFlat Direction = "flat"
)

// ChartStats holds the derived statistics of a resolved series.
type ChartStats struct {
	LatestPrice   float64   `json:"latest_price"`
	PreviousPrice float64   `json:"previous_price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"` // rounded to 2 decimals
	Direction     Direction `json:"direction"`
	WindowHigh    float64   `json:"window_high"` // over the last min(24, n) points
	WindowLow     float64   `json:"window_low"`
	WindowAverage float64   `json:"window_average"` // over the entire series
}

// SeriesOrigin names the candidate that won the priority-chain resolution.
type SeriesOrigin string

const (
	OriginFetched   SeriesOrigin = "fetched"
	OriginEmbedded  SeriesOrigin = "embedded"
	OriginRaw       SeriesOrigin = "raw"
	OriginSynthetic SeriesOrigin = "synthetic"
)

// ChartData is the chart-ready payload served to the front end.
type ChartData struct {
	Asset      string       `json:"asset"`
	Class      AssetClass   `json:"type"`
	Source     SeriesOrigin `json:"source"`
	Series     PriceSeries  `json:"series"`
	Stats      ChartStats   `json:"stats"`
	ResolvedAt time.Time    `json:"resolved_at"`
}
