package chart

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"ChartPulse/internal/fetcher"
	"ChartPulse/internal/model"
	"ChartPulse/internal/series"
	"ChartPulse/internal/stats"
)

// State is the fetch lifecycle of one provider.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Request carries the inputs of one chart evaluation.
type Request struct {
	Asset string
	Class model.AssetClass
	Input *model.PriceInput
}

// Provider resolves chart data for a single asset. It owns one cache slot
// for the fetched history, keyed by asset|class and invalidated only when
// that key changes. At most one fetch is in flight at a time; callers that
// lose the race resolve from lower-priority sources instead of blocking.
type Provider struct {
	mu       sync.Mutex
	fetcher  fetcher.Fetcher
	state    State
	cacheKey string
	cached   model.PriceSeries
	inFlight bool
}

// NewProvider creates a Provider backed by the given fetcher.
func NewProvider(f fetcher.Fetcher) *Provider {
	return &Provider{fetcher: f}
}

// State returns the current fetch lifecycle state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func cacheKey(asset string, class model.AssetClass) string {
	return asset + "|" + string(class)
}

// Chart resolves one request through the priority chain: cached fetched
// history, embedded history, raw point array, synthetic generation. When
// the input carries only a current price, a fetch against the external
// service is attempted first; fetch failures are logged and swallowed.
// The boolean is false when nothing yields data.
func (p *Provider) Chart(ctx context.Context, req Request) (*model.ChartData, bool) {
	asset := strings.ToLower(strings.TrimSpace(req.Asset))
	class := model.ParseAssetClass(string(req.Class))
	key := cacheKey(asset, class)

	in := series.FromPayload(req.Input, class)

	p.mu.Lock()
	if p.cacheKey != key {
		// Defining inputs changed: drop the old slot.
		p.cacheKey = key
		p.cached = nil
		p.state = StateIdle
	}
	in.Fetched = p.cached
	shouldFetch := asset != "" &&
		in.Current != nil &&
		len(in.Fetched) == 0 && len(in.Embedded) == 0 && len(in.Raw) == 0 &&
		!p.inFlight
	if shouldFetch {
		p.inFlight = true
		p.state = StateFetching
	}
	p.mu.Unlock()

	if shouldFetch {
		in.Fetched = p.fetch(ctx, asset, class, key)
	}

	resolved, origin, ok := series.Resolve(in)
	if !ok {
		return nil, false
	}
	st, err := stats.Compute(resolved)
	if err != nil {
		return nil, false
	}
	return &model.ChartData{
		Asset:      asset,
		Class:      class,
		Source:     origin,
		Series:     resolved,
		Stats:      st,
		ResolvedAt: time.Now(),
	}, true
}

// fetch performs one guarded fetch and stores the result in the cache
// slot, unless the slot was re-keyed while the request was outstanding.
func (p *Provider) fetch(ctx context.Context, asset string, class model.AssetClass, key string) model.PriceSeries {
	fetched, err := p.fetcher.FetchHistory(ctx, model.AssetQuery{
		Asset:        asset,
		Class:        class,
		LookbackDays: model.DefaultLookbackDays,
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if err != nil {
		log.Printf("[WARN] history fetch failed for %s (%s): %v", asset, p.fetcher.Name(), err)
		p.state = StateFailed
		return nil
	}
	if p.cacheKey != key {
		// Stale response for a superseded key; discard it.
		return nil
	}
	if len(fetched) > 0 {
		p.cached = fetched
		p.state = StateResolved
	}
	return fetched
}

// Refresh re-fetches the history for the provider's asset, replacing the
// cached series. Used by the scheduled refresh; unlike Chart it reports
// the fetch error to the caller.
func (p *Provider) Refresh(ctx context.Context, asset string, class model.AssetClass) (*model.ChartData, error) {
	asset = strings.ToLower(strings.TrimSpace(asset))
	class = model.ParseAssetClass(string(class))
	key := cacheKey(asset, class)

	p.mu.Lock()
	p.cacheKey = key
	p.inFlight = true
	p.state = StateFetching
	p.mu.Unlock()

	fetched, err := p.fetcher.FetchHistory(ctx, model.AssetQuery{
		Asset:        asset,
		Class:        class,
		LookbackDays: model.DefaultLookbackDays,
	})

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		p.state = StateFailed
		p.mu.Unlock()
		return nil, err
	}
	p.cached = fetched
	p.state = StateResolved
	p.mu.Unlock()

	resolved, origin, ok := series.Resolve(series.Input{Fetched: fetched})
	if !ok {
		return nil, nil
	}
	st, err := stats.Compute(resolved)
	if err != nil {
		return nil, err
	}
	return &model.ChartData{
		Asset:      asset,
		Class:      class,
		Source:     origin,
		Series:     resolved,
		Stats:      st,
		ResolvedAt: time.Now(),
	}, nil
}
