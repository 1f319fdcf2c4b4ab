package chart

import (
	"strings"
	"sync"

	"ChartPulse/internal/fetcher"
	"ChartPulse/internal/model"
)

// Registry hands out one Provider per asset|class, so scheduled refreshes
// and interactive chart requests share the same cache slots.
type Registry struct {
	mu        sync.Mutex
	fetcher   fetcher.Fetcher
	providers map[string]*Provider
}

// NewRegistry creates an empty registry backed by the given fetcher.
func NewRegistry(f fetcher.Fetcher) *Registry {
	return &Registry{
		fetcher:   f,
		providers: make(map[string]*Provider),
	}
}

// Get returns the provider for an asset, creating it on first use.
func (r *Registry) Get(asset string, class model.AssetClass) *Provider {
	key := cacheKey(strings.ToLower(strings.TrimSpace(asset)), model.ParseAssetClass(string(class)))

	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[key]
	if !ok {
		p = NewProvider(r.fetcher)
		r.providers[key] = p
	}
	return p
}
