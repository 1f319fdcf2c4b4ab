package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ChartPulse/internal/chart"
	"ChartPulse/internal/fetcher"
	"ChartPulse/internal/model"
)

func testServer(mock *fetcher.MockFetcher) *httptest.Server {
	s := NewServer(chart.NewRegistry(mock), []model.AssetQuery{
		{Asset: "btc", Class: model.ClassCrypto, LookbackDays: model.DefaultLookbackDays},
	})
	return httptest.NewServer(s.Handler())
}

func decodeChart(t *testing.T, resp *http.Response) *model.ChartData {
	t.Helper()
	var data model.ChartData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &data
}

func TestHandleChart(t *testing.T) {
	mock := &fetcher.MockFetcher{Series: model.PriceSeries{
		{Date: "Nov 14", Price: 100, Timestamp: 1700000000000},
		{Date: "Nov 15", Price: 110, Timestamp: 1700086400000},
	}}
	ts := testServer(mock)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/chart?asset=BTC&type=crypto")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := decodeChart(t, resp)
	if data.Source != model.OriginFetched {
		t.Errorf("expected fetched source, got %s", data.Source)
	}
	if data.Stats.LatestPrice != 110 {
		t.Errorf("expected latest 110, got %v", data.Stats.LatestPrice)
	}
}

func TestHandleChart_MissingAsset(t *testing.T) {
	ts := testServer(&fetcher.MockFetcher{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/chart")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandlePreview_RawArray(t *testing.T) {
	ts := testServer(&fetcher.MockFetcher{})
	defer ts.Close()

	body := `{"assetName":"eurusd","assetType":"forex","priceData":[
		{"date":"Nov 14","price":1.08,"timestamp":1699900000000},
		{"date":"Nov 15","price":1.09,"timestamp":1699986400000}
	]}`
	resp, err := http.Post(ts.URL+"/api/v1/chart/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := decodeChart(t, resp)
	if data.Source != model.OriginRaw {
		t.Errorf("expected raw source, got %s", data.Source)
	}
	if data.Stats.Direction != model.DirectionUp {
		t.Errorf("expected up direction, got %s", data.Stats.Direction)
	}
}

func TestHandlePreview_EmptyArrayIsNoContent(t *testing.T) {
	ts := testServer(&fetcher.MockFetcher{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/chart/preview", "application/json",
		strings.NewReader(`{"assetName":"btc","priceData":[]}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for empty array, got %d", resp.StatusCode)
	}
}

func TestHandlePreview_SyntheticFromCurrentPrice(t *testing.T) {
	mock := &fetcher.MockFetcher{}
	ts := testServer(mock)
	defer ts.Close()

	body := `{"assetName":"btc","assetType":"crypto","priceData":{"currentPrice":61000,"timestamp":1700000000000}}`
	resp, err := http.Post(ts.URL+"/api/v1/chart/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := decodeChart(t, resp)
	if data.Source != model.OriginSynthetic {
		t.Errorf("expected synthetic source, got %s", data.Source)
	}
	if len(data.Series) != 30 {
		t.Errorf("expected 30 points, got %d", len(data.Series))
	}
	// Preview never touches the external service.
	if mock.CallCount() != 0 {
		t.Errorf("expected no fetch, got %d", mock.CallCount())
	}
}

func TestHandleAssets(t *testing.T) {
	ts := testServer(&fetcher.MockFetcher{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/assets")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	var assets []model.AssetQuery
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(assets) != 1 || assets[0].Asset != "btc" {
		t.Errorf("unexpected asset list: %+v", assets)
	}
}
