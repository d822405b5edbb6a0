package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/againullin/steamfolio/internal/pricing"
)

// Engine owns the accounting rules of the ledger: weighted-average cost
// accumulation on acquisition, authoritative overwrite on import, and the
// valuation projection. All writes to the store go through here.
//
// Mutations are serialized with a single mutex. Without it, concurrent
// acquisitions of the same identity could interleave the read-modify-write
// and corrupt the average cost.
type Engine struct {
	store Store
	log   zerolog.Logger
	mu    sync.Mutex
}

// NewEngine creates a ledger engine on top of a store
func NewEngine(store Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log.With().Str("component", "ledger").Logger(),
	}
}

// Acquire records a purchase of qty units at unitCost each. A new identity
// gets a fresh holding; an existing one accumulates, with the buy price
// becoming the quantity-weighted average of all acquisitions so far:
//
//	avg = (oldQty*oldAvg + qty*unitCost) / (oldQty + qty)
//
// rounded to the storage precision. currentQuote and displayName are
// overwritten unconditionally; they describe "now", not the purchase.
//
// This is the only accumulation path. Writing to the store directly to
// record a purchase would silently break the average.
func (e *Engine) Acquire(marketName, displayName string, qty int64, unitCost, currentQuote float64) (*Holding, error) {
	marketName = strings.TrimSpace(marketName)
	if marketName == "" {
		return nil, fmt.Errorf("%w: empty market name", ErrInvalidInput)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidInput, qty)
	}
	if unitCost < 0 || currentQuote < 0 {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	if displayName == "" {
		displayName = marketName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.store.Get(marketName)
	if err != nil {
		return nil, fmt.Errorf("failed to load holding: %w", err)
	}

	var h Holding
	if existing == nil {
		h = Holding{
			MarketName:   marketName,
			DisplayName:  displayName,
			Quantity:     qty,
			BuyPrice:     pricing.Round(unitCost),
			CurrentPrice: currentQuote,
		}
	} else {
		h = *existing
		h.DisplayName = displayName
		h.BuyPrice = weightedAverage(h.Quantity, h.BuyPrice, qty, unitCost)
		h.Quantity += qty
		h.CurrentPrice = currentQuote
	}

	if err := e.store.Upsert(h); err != nil {
		return nil, fmt.Errorf("failed to store holding: %w", err)
	}

	e.log.Info().
		Str("market_name", h.MarketName).
		Int64("qty", h.Quantity).
		Float64("buy_price", h.BuyPrice).
		Bool("created", existing == nil).
		Msg("Acquisition recorded")

	return &h, nil
}

// RefreshQuote overwrites the last observed market price and display name
// of an existing holding. Quantity and average cost are untouched, so
// calling it twice with the same arguments is a no-op the second time.
func (e *Engine) RefreshQuote(marketName string, price float64, displayName string) (*Holding, error) {
	marketName = strings.TrimSpace(marketName)

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.store.Get(marketName)
	if err != nil {
		return nil, fmt.Errorf("failed to load holding: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, marketName)
	}

	h := *existing
	h.CurrentPrice = price
	if displayName != "" {
		h.DisplayName = displayName
	}

	if err := e.store.Upsert(h); err != nil {
		return nil, fmt.Errorf("failed to store holding: %w", err)
	}

	e.log.Debug().
		Str("market_name", h.MarketName).
		Float64("current_price", h.CurrentPrice).
		Msg("Quote refreshed")

	return &h, nil
}

// ReconcileFromImport applies an external batch as the authoritative final
// state: existing identities get quantity and average cost overwritten, not
// accumulated, and unseen identities are created as-is. Malformed records
// (empty identity, unparseable quantity) are counted as skips and the batch
// continues; it is never all-or-nothing.
func (e *Engine) ReconcileFromImport(records []ImportRecord) (ImportSummary, error) {
	var summary ImportSummary

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, rec := range records {
		marketName := strings.TrimSpace(rec.MarketName)
		if marketName == "" {
			e.log.Warn().Int("record", i+1).Msg("Skipping import record: empty market_name")
			summary.Skipped++
			continue
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(rec.Quantity), 10, 64)
		if err != nil || qty < 0 {
			e.log.Warn().
				Int("record", i+1).
				Str("market_name", marketName).
				Str("qty", rec.Quantity).
				Msg("Skipping import record: invalid quantity")
			summary.Skipped++
			continue
		}

		displayName := strings.TrimSpace(rec.DisplayName)
		if displayName == "" {
			displayName = marketName
		}

		h := Holding{
			MarketName:   marketName,
			DisplayName:  displayName,
			Quantity:     qty,
			BuyPrice:     pricing.Normalize(rec.BuyPrice),
			CurrentPrice: pricing.Normalize(rec.CurrentPrice),
		}

		existing, err := e.store.Get(marketName)
		if err != nil {
			return summary, fmt.Errorf("failed to load holding %q: %w", marketName, err)
		}

		if err := e.store.Upsert(h); err != nil {
			return summary, fmt.Errorf("failed to store holding %q: %w", marketName, err)
		}

		if existing == nil {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	e.log.Info().
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("Import reconciled")

	return summary, nil
}

// Remove deletes a holding by identity. A second call for the same identity
// reports ErrNotFound; it never silently succeeds.
func (e *Engine) Remove(marketName string) error {
	marketName = strings.TrimSpace(marketName)

	e.mu.Lock()
	defer e.mu.Unlock()

	existed, err := e.store.Delete(marketName)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	if !existed {
		return fmt.Errorf("%w: %s", ErrNotFound, marketName)
	}

	return nil
}

// Holdings returns the current ledger contents.
func (e *Engine) Holdings() ([]Holding, error) {
	return e.store.GetAll()
}

// Valuation derives cost basis, market value and profit for every holding
// plus portfolio totals. Pure read: recomputable at any time from the
// stored holdings alone.
func (e *Engine) Valuation() (*Valuation, error) {
	holdings, err := e.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	v := &Valuation{Items: make([]ValuationLine, 0, len(holdings))}
	for _, h := range holdings {
		qty := float64(h.Quantity)
		line := ValuationLine{
			Holding:     h,
			CostBasis:   h.BuyPrice * qty,
			MarketValue: h.CurrentPrice * qty,
		}
		line.Profit = line.MarketValue - line.CostBasis

		v.Totals.TotalCost += line.CostBasis
		v.Totals.TotalMarketValue += line.MarketValue
		v.Items = append(v.Items, line)
	}
	v.Totals.TotalProfit = v.Totals.TotalMarketValue - v.Totals.TotalCost

	return v, nil
}

// weightedAverage merges a new acquisition into an existing average cost.
func weightedAverage(oldQty int64, oldAvg float64, newQty int64, newCost float64) float64 {
	totalQty := oldQty + newQty
	if totalQty <= 0 {
		return 0.0
	}

	oldTotal := decimal.NewFromFloat(oldAvg).Mul(decimal.NewFromInt(oldQty))
	newTotal := decimal.NewFromFloat(newCost).Mul(decimal.NewFromInt(newQty))

	avg := oldTotal.Add(newTotal).Div(decimal.NewFromInt(totalQty))
	return avg.Round(pricing.Precision).InexactFloat64()
}
