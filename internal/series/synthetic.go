package series

import (
	"time"

	"github.com/shopspring/decimal"

	"ChartPulse/internal/model"
)

// Linear congruential generator parameters. Chosen for reproducibility,
// not randomness quality: identical inputs must yield identical series.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

const (
	volatilityForex   = 0.02
	volatilityDefault = 0.05
)

type walk struct {
	state int64
}

func newWalk(seed int64) *walk {
	return &walk{state: seed}
}

// next advances the generator and returns a uniform value in [0, 1).
func (w *walk) next() float64 {
	w.state = (w.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(w.state) / float64(lcgModulus)
}

// Synthesize produces a plausible 30-day price history anchored at the
// given current price. The walk is seeded from the anchor time and price,
// so repeated calls with the same inputs return identical series.
// Returns nil when the price is zero or negative.
func Synthesize(price float64, anchor time.Time, class model.AssetClass) model.PriceSeries {
	if price <= 0 {
		return nil
	}

	seed := anchor.Unix() + int64(price*100)
	w := newWalk(seed)

	volatility := volatilityDefault
	if class == model.ClassForex {
		volatility = volatilityForex
	}
	decimals := class.Decimals()

	out := make(model.PriceSeries, 0, model.DefaultLookbackDays)
	for i := model.DefaultLookbackDays - 1; i >= 0; i-- {
		u := w.next()
		change := (u - 0.5) * volatility
		// Swing amplitude scales with recency: the oldest point stays
		// within 1/30th of a full swing, the newest gets the full range.
		p := price * (1 + change*float64(model.DefaultLookbackDays-i)/float64(model.DefaultLookbackDays))

		day := anchor.AddDate(0, 0, -i)
		out = append(out, model.PricePoint{
			Date:      model.DisplayDate(day.UnixMilli()),
			Price:     roundTo(p, decimals),
			Timestamp: day.UnixMilli(),
		})
	}
	return out
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
