package fetcher

import (
	"context"

	"ChartPulse/internal/model"
)

// Fetcher defines the interface to the external price-data collaborator.
type Fetcher interface {
	FetchHistory(ctx context.Context, q model.AssetQuery) (model.PriceSeries, error)
	Name() string
}
