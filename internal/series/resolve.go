package series

import (
	"time"

	"ChartPulse/internal/model"
)

// Anchor is a lone current price observation, the lowest-priority source.
type Anchor struct {
	Price float64
	Time  time.Time
	Class model.AssetClass
}

// Input gathers the candidate data sources for one resolution pass,
// in priority order: fetched history beats embedded history beats a raw
// point array beats synthetic generation from the anchor.
type Input struct {
	Fetched  model.PriceSeries
	Embedded model.PriceSeries
	Raw      model.PriceSeries
	Current  *Anchor
}

// Resolve picks the first candidate that yields at least one point.
// The boolean is false when no candidate produced data, which callers
// translate into "render nothing" rather than an error.
func Resolve(in Input) (model.PriceSeries, model.SeriesOrigin, bool) {
	if len(in.Fetched) > 0 {
		return in.Fetched, model.OriginFetched, true
	}
	if len(in.Embedded) > 0 {
		return in.Embedded, model.OriginEmbedded, true
	}
	if len(in.Raw) > 0 {
		return in.Raw, model.OriginRaw, true
	}
	if in.Current != nil {
		if s := Synthesize(in.Current.Price, in.Current.Time, in.Current.Class); len(s) > 0 {
			return s, model.OriginSynthetic, true
		}
	}
	return nil, "", false
}

// FromPayload builds a resolver input from an inbound client payload.
// A zero payload timestamp anchors the synthetic walk at the current time.
func FromPayload(in *model.PriceInput, class model.AssetClass) Input {
	if in == nil {
		return Input{}
	}
	out := Input{
		Embedded: in.Historical,
		Raw:      in.Raw,
	}
	if in.CurrentPrice != 0 {
		anchor := time.Now()
		if in.Timestamp != 0 {
			anchor = time.UnixMilli(in.Timestamp)
		}
		out.Current = &Anchor{Price: in.CurrentPrice, Time: anchor, Class: class}
	}
	return out
}
