// Package services hosts orchestration that spans modules and clients.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/againullin/steamfolio/internal/clients/steam"
	"github.com/againullin/steamfolio/internal/modules/ledger"
)

// PriceSource fetches one quote per market hash name.
type PriceSource interface {
	FetchQuote(ctx context.Context, marketName string) steam.Quote
}

// RefreshSummary reports what a batch refresh actually did.
type RefreshSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Refresher walks all holdings and refreshes their quotes one at a time.
// The provider throttles aggressively, so requests are paced with a rate
// limiter instead of a fixed sleep; swapping the pacing policy doesn't
// touch the engine.
type Refresher struct {
	engine  *ledger.Engine
	source  PriceSource
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewRefresher creates a batch quote refresher. delay is the minimum spacing
// between consecutive provider calls.
func NewRefresher(engine *ledger.Engine, source PriceSource, delay time.Duration, log zerolog.Logger) *Refresher {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	return &Refresher{
		engine:  engine,
		source:  source,
		limiter: rate.NewLimiter(limit, 1),
		log:     log.With().Str("component", "refresher").Logger(),
	}
}

// RefreshAll fetches a fresh quote for every holding, sequentially. Each
// holding is its own unit of work: a failed fetch counts as Failed and the
// batch moves on. Cancelling the context stops between items, leaving
// already-refreshed holdings updated and the rest untouched.
func (r *Refresher) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	holdings, err := r.engine.Holdings()
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("failed to list holdings: %w", err)
	}

	summary := RefreshSummary{Total: len(holdings)}
	r.log.Info().Int("total", summary.Total).Msg("Starting batch quote refresh")

	for i, h := range holdings {
		if err := r.limiter.Wait(ctx); err != nil {
			r.log.Warn().Int("processed", i).Msg("Batch refresh cancelled")
			return summary, err
		}

		quote := r.source.FetchQuote(ctx, h.MarketName)
		if !quote.OK() {
			r.log.Warn().
				Str("market_name", h.MarketName).
				Str("outcome", string(quote.Outcome)).
				Msg("Quote fetch failed, keeping previous price")
			summary.Failed++
			continue
		}

		if _, err := r.engine.RefreshQuote(h.MarketName, quote.Price, quote.DisplayName); err != nil {
			// Holding may have been removed mid-batch; not fatal
			r.log.Warn().Err(err).Str("market_name", h.MarketName).Msg("Failed to apply refreshed quote")
			summary.Failed++
			continue
		}

		summary.Updated++
	}

	r.log.Info().
		Int("total", summary.Total).
		Int("updated", summary.Updated).
		Int("failed", summary.Failed).
		Msg("Batch quote refresh finished")

	return summary, nil
}
