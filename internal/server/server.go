package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ChartPulse/internal/chart"
	"ChartPulse/internal/model"
	"ChartPulse/internal/series"
	"ChartPulse/internal/stats"
)

// Server exposes resolved chart data as a JSON API for the web front end.
type Server struct {
	Registry *chart.Registry
	Assets   []model.AssetQuery
}

// NewServer creates a Server.
func NewServer(reg *chart.Registry, assets []model.AssetQuery) *Server {
	return &Server{Registry: reg, Assets: assets}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/chart", s.handleChart)
	mux.HandleFunc("POST /api/v1/chart/preview", s.handlePreview)
	mux.HandleFunc("GET /api/v1/assets", s.handleAssets)
	return mux
}

// handleChart resolves the chart for a tracked or ad-hoc asset. The
// external fetch is allowed here; a miss answers 204, not an error.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	asset := r.URL.Query().Get("asset")
	if asset == "" {
		httpError(w, http.StatusBadRequest, "asset parameter is required")
		return
	}
	class := model.ParseAssetClass(r.URL.Query().Get("type"))

	p := s.Registry.Get(asset, class)
	data, ok := p.Chart(r.Context(), chart.Request{Asset: asset, Class: class})
	if !ok {
		// Nothing worth charting: no history and no anchor price.
		data, err := p.Refresh(r.Context(), asset, class)
		if err != nil || data == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, data)
		return
	}
	writeJSON(w, data)
}

// previewRequest is a client-supplied chart payload: priceData is either
// an object with a current price and optional embedded history, or a bare
// array of points.
type previewRequest struct {
	AssetName string            `json:"assetName"`
	AssetType string            `json:"assetType"`
	PriceData *model.PriceInput `json:"priceData"`
}

// handlePreview resolves client-supplied data only: embedded history, raw
// points, or a synthetic walk from the current price. No external fetch.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	class := model.ParseAssetClass(req.AssetType)

	resolved, origin, ok := series.Resolve(series.FromPayload(req.PriceData, class))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	st, err := stats.Compute(resolved)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, &model.ChartData{
		Asset:      req.AssetName,
		Class:      class,
		Source:     origin,
		Series:     resolved,
		Stats:      st,
		ResolvedAt: time.Now(),
	})
}

func (s *Server) handleAssets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Assets)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
