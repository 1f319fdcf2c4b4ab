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

// CoinGeckoFetcher implements Fetcher against the CoinGecko public API.
// Used as the fallback data source when no price API is configured.
// It only serves crypto assets; forex lookups return an error so the
// caller falls back to lower-priority sources.
type CoinGeckoFetcher struct {
	Client   *http.Client
	AssetMap map[string]string // maps common tickers to CoinGecko ids
}

// NewCoinGeckoFetcher creates a new CoinGecko fetcher.
func NewCoinGeckoFetcher(proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		AssetMap: map[string]string{
			"btc": "bitcoin",
			"eth": "ethereum",
			"sol": "solana",
			"xrp": "ripple",
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) geckoID(asset string) string {
	if id, ok := f.AssetMap[asset]; ok {
		return id
	}
	return asset
}

// geckoChart is the response structure from the market_chart endpoint.
// Each entry is a [timestamp-ms, price] pair.
type geckoChart struct {
	Prices [][]float64 `json:"prices"`
}

func (f *CoinGeckoFetcher) FetchHistory(ctx context.Context, q model.AssetQuery) (model.PriceSeries, error) {
	if q.Class == model.ClassForex {
		return nil, fmt.Errorf("coingecko: forex asset %q not supported", q.Asset)
	}
	days := q.LookbackDays
	if days <= 0 {
		days = model.DefaultLookbackDays
	}

	asset := strings.ToLower(q.Asset)
	u := fmt.Sprintf("https://api.coingecko.com/api/v3/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		url.PathEscape(f.geckoID(asset)), days)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart geckoChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no data for %q", asset)
	}

	points := make(model.PriceSeries, 0, len(chart.Prices))
	for _, pair := range chart.Prices {
		if len(pair) < 2 {
			continue
		}
		ts := int64(pair[0])
		points = append(points, model.PricePoint{
			Date:      model.DisplayDate(ts),
			Price:     pair[1],
			Timestamp: ts,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })

	// The endpoint returns one extra point for the current day; trim to
	// the requested window.
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}
