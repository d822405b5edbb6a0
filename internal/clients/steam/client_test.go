package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain market name",
			input: "AK-47 | Redline (Field-Tested)",
			want:  "AK-47 | Redline (Field-Tested)",
		},
		{
			name:  "listing URL",
			input: "https://steamcommunity.com/market/listings/730/AK-47%20%7C%20Redline%20%28Field-Tested%29",
			want:  "AK-47 | Redline (Field-Tested)",
		},
		{
			name:  "listing path only",
			input: "/listings/730/M4A1-S%20%7C%20Printstream",
			want:  "M4A1-S | Printstream",
		},
		{
			name:  "surrounding whitespace",
			input: "  AWP | Asiimov (Battle-Scarred)  ",
			want:  "AWP | Asiimov (Battle-Scarred)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIdentity(tt.input))
		})
	}
}

func TestDeriveDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips prefix and wear",
			input: "AK-47 | Redline (Field-Tested)",
			want:  "Redline",
		},
		{
			name:  "strips prefix without wear",
			input: "AWP | Dragon Lore",
			want:  "Dragon Lore",
		},
		{
			name:  "no separator stays unchanged",
			input: "Operation Breakout Weapon Case",
			want:  "Operation Breakout Weapon Case",
		},
		{
			name:  "keeps inner parentheses",
			input: "M4A4 | Poseidon (Factory New)",
			want:  "Poseidon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDisplayName(tt.input))
		})
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:  baseURL,
		AppID:    730,
		Currency: 1,
		Timeout:  2 * time.Second,
	}, zerolog.Nop())
}

func TestFetchQuote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "730", r.URL.Query().Get("appid"))
		assert.Equal(t, "1", r.URL.Query().Get("currency"))
		assert.Equal(t, "AK-47 | Redline (Field-Tested)", r.URL.Query().Get("market_hash_name"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"lowest_price":"$12.34","median_price":"$12.50"}`))
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "AK-47 | Redline (Field-Tested)")

	require.Equal(t, OutcomeSuccess, quote.Outcome)
	assert.True(t, quote.OK())
	assert.Equal(t, 12.34, quote.Price)
	assert.Equal(t, "Redline", quote.DisplayName)
}

func TestFetchQuote_MedianFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"median_price":"$8.00"}`))
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "item")

	require.Equal(t, OutcomeSuccess, quote.Outcome)
	assert.Equal(t, 8.00, quote.Price)
}

func TestFetchQuote_ProviderSaysNo(t *testing.T) {
	// success=false means "no listed price", not a failed fetch
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "AK-47 | Redline (Field-Tested)")

	assert.Equal(t, OutcomeSuccess, quote.Outcome)
	assert.Equal(t, 0.0, quote.Price)
	// Without a listed price, the raw market name stands in as display name
	assert.Equal(t, "AK-47 | Redline (Field-Tested)", quote.DisplayName)
}

func TestFetchQuote_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "item")

	assert.Equal(t, OutcomeRateLimited, quote.Outcome)
	assert.False(t, quote.OK())
	assert.Equal(t, 0.0, quote.Price)
	assert.Equal(t, "item", quote.DisplayName)
}

func TestFetchQuote_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "item")

	assert.Equal(t, OutcomeHTTPError, quote.Outcome)
	assert.Equal(t, http.StatusInternalServerError, quote.StatusCode)
}

func TestFetchQuote_ParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "item")

	assert.Equal(t, OutcomeParseFailure, quote.Outcome)
	assert.Equal(t, 0.0, quote.Price)
}

func TestFetchQuote_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Nothing listening anymore

	quote := newTestClient(srv.URL).FetchQuote(context.Background(), "item")

	assert.Equal(t, OutcomeNetworkFailure, quote.Outcome)
	assert.Equal(t, "item", quote.DisplayName)
}
