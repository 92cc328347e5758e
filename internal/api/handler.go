// Package api exposes the analysis engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/analysis"
	"github.com/rentradar/rentradar/internal/cashflow"
	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/listing"
	"github.com/rentradar/rentradar/internal/portfolio"
	"github.com/rentradar/rentradar/internal/projection"
	"github.com/rentradar/rentradar/internal/sharecode"
)

const defaultHorizonYears = 30

// Listings is the property search surface the handler depends on.
type Listings interface {
	Search(ctx context.Context, location string) ([]domain.Property, error)
	Refresh(ctx context.Context, location string) ([]domain.Property, error)
}

// RefreshQueue schedules listing refreshes through the priority queue.
type RefreshQueue interface {
	Enqueue(location string, p listing.Priority)
}

// Analyses is the saved-analysis surface the handler depends on.
type Analyses interface {
	Save(ctx context.Context, id, name string, state sharecode.State) (string, error)
	Get(ctx context.Context, id string) (*analysis.Analysis, sharecode.State, error)
	List(ctx context.Context, limit int) ([]analysis.Summary, error)
	Delete(ctx context.Context, id string) error
}

// Handler provides the investment analysis HTTP endpoints.
type Handler struct {
	listings  Listings
	queue     RefreshQueue
	portfolio *portfolio.Service
	scorer    portfolio.Scorer
	analyses  Analyses
}

// NewHandler creates a new API handler. analyses may be nil when no
// database is configured; the analysis CRUD endpoints then return 503.
func NewHandler(listings Listings, queue RefreshQueue, pf *portfolio.Service, scorer portfolio.Scorer, analyses Analyses) *Handler {
	return &Handler{listings: listings, queue: queue, portfolio: pf, scorer: scorer, analyses: analyses}
}

// SearchProperties handles GET /api/v1/properties/search.
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	search := h.listings.Search
	if r.URL.Query().Get("refresh") == "true" {
		search = h.listings.Refresh
	}

	props, err := search(r.Context(), location)
	if err != nil {
		slog.Error("property search failed", "location", location, "error", err)
		writeError(w, http.StatusBadGateway, "listing provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// refreshRequest names the location to re-fetch.
type refreshRequest struct {
	Location string `json:"location"`
}

// ScheduleRefresh handles POST /api/v1/properties/refresh. The location is
// queued at user priority, ahead of any scheduled background refreshes, and
// the cache is updated when the fetch completes.
func (h *Handler) ScheduleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		writeError(w, http.StatusServiceUnavailable, "refresh queue not configured")
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	h.queue.Enqueue(req.Location, listing.PriorityUser)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "location": req.Location})
}

// analyzeRequest carries one property plus optional assumption overrides.
type analyzeRequest struct {
	Property     domain.Property          `json:"property"`
	Settings     *domain.CashflowSettings `json:"settings,omitempty"`
	Rates        domain.GrowthRates       `json:"rates"`
	HorizonYears int                      `json:"horizonYears"`
}

type analyzeResponse struct {
	Cashflow    domain.Cashflow           `json:"cashflow"`
	Score       decimal.Decimal           `json:"score"`
	Projections []domain.YearlyProjection `json:"projections"`
}

// AnalyzeProperty handles POST /api/v1/analyze.
func (h *Handler) AnalyzeProperty(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings := domain.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	horizon := req.HorizonYears
	if horizon <= 0 {
		horizon = defaultHorizonYears
	}

	cf := cashflow.Compute(req.Property, settings)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Cashflow:    cf,
		Score:       h.scorer.Score(req.Property, cf),
		Projections: projection.Project(req.Property, settings, req.Rates, horizon),
	})
}

// portfolioRequest is the full aggregation input.
type portfolioRequest struct {
	Properties   []portfolio.Entry        `json:"properties"`
	Selected     []string                 `json:"selected"`
	Settings     *domain.CashflowSettings `json:"settings,omitempty"`
	Rates        domain.GrowthRates       `json:"rates"`
	HorizonYears int                      `json:"horizonYears"`
}

// AggregatePortfolio handles POST /api/v1/portfolio.
func (h *Handler) AggregatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings := domain.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	horizon := req.HorizonYears
	if horizon <= 0 {
		horizon = defaultHorizonYears
	}

	selected := make(map[string]bool, len(req.Selected))
	for _, id := range req.Selected {
		selected[id] = true
	}

	agg := h.portfolio.Aggregate(req.Properties, selected, settings, req.Rates, horizon)
	writeJSON(w, http.StatusOK, agg)
}

// CreateShareCode handles POST /api/v1/share.
func (h *Handler) CreateShareCode(w http.ResponseWriter, r *http.Request) {
	var state sharecode.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code, err := sharecode.Encode(state)
	if err != nil {
		slog.Error("failed to encode share code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

// ResolveShareCode handles GET /api/v1/share/{code}.
func (h *Handler) ResolveShareCode(w http.ResponseWriter, r *http.Request) {
	state, err := sharecode.Decode(r.PathValue("code"))
	if err != nil {
		if errors.Is(err, sharecode.ErrInvalidCode) {
			writeError(w, http.StatusBadRequest, "invalid share code")
			return
		}
		slog.Error("failed to decode share code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// saveAnalysisRequest names a state to persist. An empty ID creates a new
// analysis; a known ID updates it in place.
type saveAnalysisRequest struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	State sharecode.State `json:"state"`
}

// SaveAnalysis handles POST /api/v1/analyses.
func (h *Handler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis storage not configured")
		return
	}

	var req saveAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.analyses.Save(r.Context(), req.ID, req.Name, req.State)
	if err != nil {
		slog.Error("failed to save analysis", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetAnalysis handles GET /api/v1/analyses/{id}.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis storage not configured")
		return
	}

	a, _, err := h.analyses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		slog.Error("failed to get analysis", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListAnalyses handles GET /api/v1/analyses.
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis storage not configured")
		return
	}

	const maxLimit = 200
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	summaries, err := h.analyses.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list analyses", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// DeleteAnalysis handles DELETE /api/v1/analyses/{id}.
func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis storage not configured")
		return
	}

	if err := h.analyses.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		slog.Error("failed to delete analysis", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
