// Package steam fetches market quotes from the Steam community market.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/againullin/steamfolio/internal/pricing"
)

const defaultBaseURL = "https://steamcommunity.com/market/priceoverview/"

// Steam rejects requests without a browser-looking user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	listingPath = regexp.MustCompile(`/listings/\d+/(.+)$`)
	wearSuffix  = regexp.MustCompile(`\s*\([^)]+\)$`)
)

// Config holds client configuration
type Config struct {
	BaseURL  string        // Defaults to the community market endpoint
	AppID    int           // 730 = CS2
	Currency int           // 1 = USD
	Timeout  time.Duration // Per-request timeout
}

// Client is a Steam community market price client. It does not throttle
// itself; pacing between calls is the caller's policy.
type Client struct {
	baseURL  string
	appID    int
	currency int
	client   *http.Client
	log      zerolog.Logger
}

// NewClient creates a new Steam market client
func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:  baseURL,
		appID:    cfg.AppID,
		currency: cfg.Currency,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "steam").Logger(),
	}
}

// ResolveIdentity extracts the market hash name from user input. A pasted
// market listing URL ("https://steamcommunity.com/market/listings/730/AK-47%20...")
// yields the URL-decoded item name; anything else is used as-is after trimming.
func ResolveIdentity(input string) string {
	input = strings.TrimSpace(input)

	if m := listingPath.FindStringSubmatch(input); m != nil {
		if decoded, err := url.PathUnescape(m[1]); err == nil {
			return decoded
		}
	}

	return input
}

// DeriveDisplayName produces a cleaner label from a market hash name.
// "AK-47 | Redline (Field-Tested)" becomes "Redline": the part after the
// weapon/collection separator, minus the trailing wear qualifier. Names
// without the separator are returned unchanged.
func DeriveDisplayName(marketName string) string {
	if !strings.Contains(marketName, " | ") {
		return marketName
	}

	parts := strings.Split(marketName, " | ")
	suffix := parts[len(parts)-1]
	return strings.TrimSpace(wearSuffix.ReplaceAllString(suffix, ""))
}

// FetchQuote fetches the current price and display name for a market hash
// name. Failures are reported through the Outcome field rather than an
// error: the caller decides whether to retry, skip, or abort a batch.
func (c *Client) FetchQuote(ctx context.Context, marketName string) Quote {
	quote := Quote{
		MarketName:  marketName,
		DisplayName: marketName,
	}

	params := url.Values{}
	params.Set("appid", fmt.Sprintf("%d", c.appID))
	params.Set("currency", fmt.Sprintf("%d", c.currency))
	params.Set("market_hash_name", marketName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error().Err(err).Str("market_name", marketName).Msg("Failed to build price request")
		quote.Outcome = OutcomeNetworkFailure
		return quote
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("market_name", marketName).Msg("Fetching Steam price")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("market_name", marketName).Msg("Price request failed")
		quote.Outcome = OutcomeNetworkFailure
		return quote
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn().Str("market_name", marketName).Msg("Steam rate limit exceeded (429), increase the fetch delay")
		quote.Outcome = OutcomeRateLimited
		return quote
	case resp.StatusCode != http.StatusOK:
		c.log.Error().Int("status", resp.StatusCode).Str("market_name", marketName).Msg("Steam returned HTTP error")
		quote.Outcome = OutcomeHTTPError
		quote.StatusCode = resp.StatusCode
		return quote
	}

	var payload priceOverviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error().Err(err).Str("market_name", marketName).Msg("Failed to parse price response")
		quote.Outcome = OutcomeParseFailure
		return quote
	}

	quote.Outcome = OutcomeSuccess

	// success=false from Steam means "no listed price", not a failed fetch;
	// the raw market name stands in for the display name in that case
	if payload.Success {
		quote.DisplayName = DeriveDisplayName(marketName)

		priceStr := payload.LowestPrice
		if priceStr == "" {
			priceStr = payload.MedianPrice
		}
		quote.Price = pricing.Normalize(priceStr)
	}

	c.log.Info().
		Str("market_name", marketName).
		Float64("price", quote.Price).
		Msg("Fetched Steam price")

	return quote
}
