package fetcher

import (
	"context"
	"sync"

	"ChartPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu     sync.Mutex
	Series model.PriceSeries
	Err    error
	Calls  int
	LastQ  model.AssetQuery
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, q model.AssetQuery) (model.PriceSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastQ = q
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series, nil
}

// CallCount reports how many fetches were issued.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
