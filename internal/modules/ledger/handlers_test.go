package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*chi.Mux, *Engine) {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	engine := NewEngine(NewRepository(db, zerolog.Nop()), zerolog.Nop())
	handler := NewHandler(engine, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/portfolio", handler.HandleGetPortfolio)
	r.Post("/portfolio/acquire", handler.HandleAcquire)
	r.Delete("/portfolio/{marketName}", handler.HandleRemove)

	return r, engine
}

func TestHandleAcquire(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := `{"market_name":"AK-47 | X","display_name":"X","qty":2,"buy_price":10.0,"current_price":12.0}`
	req := httptest.NewRequest("POST", "/portfolio/acquire", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var h Holding
	require.NoError(t, json.NewDecoder(w.Body).Decode(&h))
	assert.Equal(t, int64(2), h.Quantity)
	assert.Equal(t, 10.0, h.BuyPrice)
}

func TestHandleAcquire_InvalidQuantity(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := `{"market_name":"item","qty":0,"buy_price":1.0}`
	req := httptest.NewRequest("POST", "/portfolio/acquire", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAcquire_FractionalQuantityRejected(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := `{"market_name":"item","qty":1.5,"buy_price":1.0}`
	req := httptest.NewRequest("POST", "/portfolio/acquire", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetPortfolio(t *testing.T) {
	router, engine := setupTestRouter(t)

	_, err := engine.Acquire("a", "a", 2, 10.00, 12.00)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/portfolio", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var v Valuation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	require.Len(t, v.Items, 1)
	assert.InDelta(t, 20.0, v.Totals.TotalCost, 1e-9)
	assert.InDelta(t, 24.0, v.Totals.TotalMarketValue, 1e-9)
	assert.InDelta(t, 4.0, v.Totals.TotalProfit, 1e-9)
}

func TestHandleRemove(t *testing.T) {
	router, engine := setupTestRouter(t)

	_, err := engine.Acquire("AK-47 | X", "X", 1, 1.00, 0)
	require.NoError(t, err)

	// Market names contain spaces and pipes, so the path segment is escaped
	req := httptest.NewRequest("DELETE", "/portfolio/"+url.PathEscape("AK-47 | X"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	holdings, err := engine.Holdings()
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestHandleRemove_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("DELETE", "/portfolio/unknown-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
