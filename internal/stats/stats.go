package stats

import (
	"errors"

	"github.com/shopspring/decimal"

	"ChartPulse/internal/model"
)

// highLowWindow is the number of trailing points scanned for the
// window high/low. Shorter series use their full length.
const highLowWindow = 24

// Compute derives chart statistics from a resolved series.
func Compute(s model.PriceSeries) (model.ChartStats, error) {
	if len(s) == 0 {
		return model.ChartStats{}, errors.New("empty series")
	}

	latest := s[len(s)-1].Price
	previous := latest
	if len(s) > 1 {
		previous = s[len(s)-2].Price
	}

	change := latest - previous
	var changePercent float64
	if previous != 0 {
		changePercent = round2(change / previous * 100)
	}

	direction := model.DirectionDown
	if change >= 0 {
		direction = model.DirectionUp
	}

	high, low := windowHighLow(s)

	return model.ChartStats{
		LatestPrice:   latest,
		PreviousPrice: previous,
		Change:        change,
		ChangePercent: changePercent,
		Direction:     direction,
		WindowHigh:    high,
		WindowLow:     low,
		WindowAverage: average(s),
	}, nil
}

// windowHighLow scans the most recent min(highLowWindow, len) points.
func windowHighLow(s model.PriceSeries) (high, low float64) {
	start := len(s) - highLowWindow
	if start < 0 {
		start = 0
	}
	high = s[start].Price
	low = s[start].Price
	for _, p := range s[start+1:] {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low
}

// average is the arithmetic mean over the entire series.
func average(s model.PriceSeries) float64 {
	sum := 0.0
	for _, p := range s.Prices() {
		sum += p
	}
	return sum / float64(len(s))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
