// Package api exposes the parse and catalog endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lenscatalog/dpreview-scraper/internal/database"
	"github.com/lenscatalog/dpreview-scraper/internal/parser"
)

// CameraStore is the subset of the database the handlers need.
type CameraStore interface {
	GetCamera(ctx context.Context, productCode string) (*database.CameraRow, error)
	ListCameras(ctx context.Context, limit, offset int) ([]*database.CameraRow, error)
	CountCamerasByStatus(ctx context.Context) (map[database.CameraStatus]int, error)
}

type Handlers struct {
	store  CameraStore
	parser *parser.DPReviewParser
	logger *slog.Logger
}

func NewHandlers(store CameraStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		store:  store,
		parser: parser.NewDPReviewParser(),
		logger: logger,
	}
}

// ParseRequest carries pre-fetched page HTML for direct parsing. Review
// fields are optional.
type ParseRequest struct {
	ProductCode     string   `json:"product_code"`
	URL             string   `json:"url"`
	OverviewHTML    string   `json:"overview_html"`
	SpecsHTML       string   `json:"specs_html"`
	ReviewHTML      string   `json:"review_html,omitempty"`
	ReviewSpecsHTML string   `json:"review_specs_html,omitempty"`
	ShortSpecs      []string `json:"short_specs,omitempty"`
}

// Parse handles stateless parse requests: page HTML in, camera record out.
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductCode == "" {
		h.respondError(w, http.StatusBadRequest, "product_code is required")
		return
	}
	if req.OverviewHTML == "" || req.SpecsHTML == "" {
		h.respondError(w, http.StatusBadRequest, "overview_html and specs_html are required")
		return
	}

	camera, err := h.parser.ParseProductPage(
		req.OverviewHTML, req.SpecsHTML, req.ReviewHTML, req.ReviewSpecsHTML,
		req.ProductCode, req.URL, req.ShortSpecs)
	if err != nil {
		h.logger.Error("failed to parse product pages", "error", err, "product", req.ProductCode)
		h.respondError(w, http.StatusUnprocessableEntity, "failed to parse product pages")
		return
	}

	h.respondJSON(w, http.StatusOK, camera)
}

// GetCamera returns one stored camera record.
func (h *Handlers) GetCamera(w http.ResponseWriter, r *http.Request) {
	productCode := chi.URLParam(r, "productCode")
	if productCode == "" {
		h.respondError(w, http.StatusBadRequest, "product code is required")
		return
	}

	row, err := h.store.GetCamera(r.Context(), productCode)
	if err != nil {
		h.logger.Error("failed to get camera", "error", err, "product", productCode)
		h.respondError(w, http.StatusInternalServerError, "failed to get camera")
		return
	}
	if row == nil {
		h.respondError(w, http.StatusNotFound, "camera not found")
		return
	}

	h.respondJSON(w, http.StatusOK, cameraResponse(row))
}

// ListCameras returns completed records, paginated by limit and offset.
func (h *Handlers) ListCameras(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := h.store.ListCameras(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list cameras", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list cameras")
		return
	}

	cameras := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		cameras = append(cameras, cameraResponse(row))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"cameras": cameras,
		"count":   len(cameras),
		"limit":   limit,
		"offset":  offset,
	})
}

// GetStats returns crawl counts by status.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.CountCamerasByStatus(r.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	stats := map[string]int{"total": 0}
	for status, count := range counts {
		stats[string(status)] = count
		stats["total"] += count
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func cameraResponse(row *database.CameraRow) map[string]interface{} {
	resp := map[string]interface{}{
		"product_code": row.ProductCode,
		"name":         row.Name,
		"url":          row.URL,
		"status":       row.Status,
	}
	if row.ReviewScore.Valid {
		resp["review_score"] = row.ReviewScore.Int32
	}
	if len(row.Record) > 0 {
		resp["record"] = json.RawMessage(row.Record)
	}
	if row.ErrorMessage.Valid && row.ErrorMessage.String != "" {
		resp["error"] = row.ErrorMessage.String
	}
	if row.ScrapedAt.Valid {
		resp["scraped_at"] = row.ScrapedAt.Time
	}
	return resp
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
