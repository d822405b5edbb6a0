// Package quotes exposes on-demand price lookups for the acquisition flow.
package quotes

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/againullin/steamfolio/internal/clients/steam"
)

// Source fetches a quote for a market hash name.
type Source interface {
	FetchQuote(ctx context.Context, marketName string) steam.Quote
}

// Service resolves user input to an item identity and fetches its quote.
// Successful quotes are cached for a short TTL so the fetch-then-acquire
// dialog flow doesn't hit Steam twice for the same item.
type Service struct {
	source Source
	cache  *gocache.Cache
	log    zerolog.Logger
}

// NewService creates a new quote service
func NewService(source Source, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		cache:  gocache.New(ttl, 2*ttl),
		log:    log.With().Str("component", "quotes").Logger(),
	}
}

// Lookup fetches the current quote for a market hash name or a pasted
// market listing URL. Fetch failures are carried in the quote's outcome,
// never returned as an error.
func (s *Service) Lookup(ctx context.Context, query string) steam.Quote {
	marketName := steam.ResolveIdentity(query)

	if cached, found := s.cache.Get(marketName); found {
		s.log.Debug().Str("market_name", marketName).Msg("Quote served from cache")
		return cached.(steam.Quote)
	}

	quote := s.source.FetchQuote(ctx, marketName)
	if quote.OK() {
		s.cache.SetDefault(marketName, quote)
	}

	return quote
}
