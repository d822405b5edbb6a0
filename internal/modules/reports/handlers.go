package reports

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/againullin/steamfolio/internal/modules/ledger"
)

// Handler handles export and import HTTP requests
type Handler struct {
	engine *ledger.Engine
	log    zerolog.Logger
}

// NewHandler creates a new reports handler
func NewHandler(engine *ledger.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "reports").Logger(),
	}
}

// HandleImport reconciles a CSV request body against the ledger. Malformed
// rows are skipped and counted, never fatal; the response says exactly what
// happened to the batch.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	records, skippedRows, err := ParseCSV(r.Body, h.log)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to parse CSV: "+err.Error())
		return
	}

	summary, err := h.engine.ReconcileFromImport(records)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary.Skipped += skippedRows

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleExportCSV streams the ledger as CSV
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.engine.Holdings()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.csv"`)

	if err := WriteCSV(w, holdings); err != nil {
		h.log.Error().Err(err).Msg("Failed to write CSV export")
	}
}

// HandleExportHTML renders the ledger as a static HTML report
func (h *Handler) HandleExportHTML(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.engine.Valuation()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := WriteHTML(w, valuation, time.Now()); err != nil {
		h.log.Error().Err(err).Msg("Failed to write HTML export")
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
