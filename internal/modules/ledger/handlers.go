package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	engine *Engine
	log    zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(engine *Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "ledger").Logger(),
	}
}

// acquireRequest is the body of POST /acquire. Quantity is an integer;
// fractional values fail JSON decoding and are rejected.
type acquireRequest struct {
	MarketName   string  `json:"market_name"`
	DisplayName  string  `json:"display_name"`
	Quantity     int64   `json:"qty"`
	BuyPrice     float64 `json:"buy_price"`
	CurrentPrice float64 `json:"current_price"`
}

// HandleGetPortfolio returns the full valuation: per-item lines and totals
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.engine.Valuation()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, valuation)
}

// HandleAcquire records an acquisition, creating the holding on first buy
// and accumulating into the weighted average on subsequent ones
func (h *Handler) HandleAcquire(w http.ResponseWriter, r *http.Request) {
	var req acquireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	holding, err := h.engine.Acquire(req.MarketName, req.DisplayName, req.Quantity, req.BuyPrice, req.CurrentPrice)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, holding)
}

// HandleRemove deletes a holding by market name (URL-encoded path segment)
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	marketName, err := url.PathUnescape(chi.URLParam(r, "marketName"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid market name")
		return
	}

	if err := h.engine.Remove(marketName); err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": marketName})
}

// Helper methods

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
