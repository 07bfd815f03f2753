// Package v1 - Versioned API handler
// Routes: POST /v1/quotes, POST /v1/quotes/options, POST /v1/quotes/diff,
// POST /v1/tax/resolve
package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"translation-quote/api/envelope"
	"translation-quote/api/v1/mapping"
	"translation-quote/api/v1/types"
	"translation-quote/core/engine"
)

// FingerprintHeader carries the quote fingerprint on quote responses
const FingerprintHeader = "X-Quote-Fingerprint"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Handler handles v1 API requests. It reads the clock once per request and
// passes the instant to the engine; the engine never reads it.
type Handler struct {
	engine *engine.Engine
	config mapping.MapperConfig
	clock  func() time.Time
}

// NewHandler creates a v1 handler. clock may be nil to use time.Now.
func NewHandler(eng *engine.Engine, engineVersion string, clock func() time.Time) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		engine: eng,
		config: mapping.MapperConfig{EngineVersion: engineVersion, APIVersion: "v1"},
		clock:  clock,
	}
}

// Routes returns the v1 router, mounted under /v1
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/quotes", h.handleQuote)
	r.Post("/quotes/options", h.handleOptions)
	r.Post("/quotes/diff", h.handleDiff)
	r.Post("/tax/resolve", h.handleTax)
	return r
}

// handleQuote handles POST /v1/quotes
func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	now := h.clock()

	var dto types.QuoteRequest
	if !decode(w, r, &dto) {
		return
	}
	req, err := mapping.ToQuoteRequest(dto, now)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}

	res, err := h.engine.Quote(r.Context(), req)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}

	w.Header().Set(FingerprintHeader, res.Fingerprint.String())
	envelope.WriteJSON(w, http.StatusOK, mapping.MapQuoteResponse(res, time.Since(now), h.config))
}

// handleOptions handles POST /v1/quotes/options
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	now := h.clock()

	var dto types.QuoteRequest
	if !decode(w, r, &dto) {
		return
	}
	req, err := mapping.ToQuoteRequest(dto, now)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}

	res, err := h.engine.Options(r.Context(), req)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}

	w.Header().Set(FingerprintHeader, res.Fingerprint.String())
	envelope.WriteJSON(w, http.StatusOK, mapping.MapOptionsResponse(res, req.Now, time.Since(now), h.config))
}

// handleDiff handles POST /v1/quotes/diff
func (h *Handler) handleDiff(w http.ResponseWriter, r *http.Request) {
	now := h.clock()

	var dto types.DiffRequest
	if !decode(w, r, &dto) {
		return
	}
	before, err := mapping.ToQuoteRequest(dto.Before, now)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}
	after, err := mapping.ToQuoteRequest(dto.After, now)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}

	d, err := h.engine.Diff(r.Context(), before, after)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}
	envelope.WriteJSON(w, http.StatusOK, mapping.MapDiffResponse(d, dto.IncludeUnchanged, now, time.Since(now), h.config))
}

// handleTax handles POST /v1/tax/resolve
func (h *Handler) handleTax(w http.ResponseWriter, r *http.Request) {
	var dto types.TaxRequest
	if !decode(w, r, &dto) {
		return
	}
	region, err := mapping.ToTaxRegion(dto)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}
	res, err := h.engine.ResolveTax(r.Context(), region)
	if err != nil {
		envelope.WriteError(w, r, err)
		return
	}
	envelope.WriteJSON(w, http.StatusOK, mapping.MapTaxResponse(res))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		envelope.WriteBadJSON(w, r, err)
		return false
	}
	return true
}
