package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"ChartPulse/internal/model"
)

// PriceAPIFetcher implements Fetcher against the configured price-data
// REST service.
type PriceAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewPriceAPIFetcher creates a new fetcher with optional proxy support.
func NewPriceAPIFetcher(baseURL, apiKey, proxyURL string) *PriceAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PriceAPIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *PriceAPIFetcher) Name() string { return "priceapi" }

// historyResponse is the expected JSON shape from the history endpoint.
type historyResponse struct {
	HistoricalData []struct {
		Date      string  `json:"date"`
		Price     float64 `json:"price"`
		Timestamp int64   `json:"timestamp"`
	} `json:"historicalData"`
}

// FetchHistory requests the trailing daily history for one asset.
// The asset identifier is lowercased on the wire.
func (f *PriceAPIFetcher) FetchHistory(ctx context.Context, q model.AssetQuery) (model.PriceSeries, error) {
	days := q.LookbackDays
	if days <= 0 {
		days = model.DefaultLookbackDays
	}
	endpoint := fmt.Sprintf("%s/api/v1/history?asset=%s&type=%s&days=%d",
		f.BaseURL, url.QueryEscape(strings.ToLower(q.Asset)), q.Class, days)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch history: status %d, body: %s", resp.StatusCode, string(body))
	}

	var hist historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&hist); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if len(hist.HistoricalData) == 0 {
		return nil, fmt.Errorf("fetch history: empty result for %q", q.Asset)
	}

	points := make(model.PriceSeries, len(hist.HistoricalData))
	for i, h := range hist.HistoricalData {
		date := h.Date
		if date == "" {
			date = model.DisplayDate(h.Timestamp)
		}
		points[i] = model.PricePoint{Date: date, Price: h.Price, Timestamp: h.Timestamp}
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return points, nil
}
