package steam

// Outcome classifies the result of a quote fetch.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeHTTPError      Outcome = "http_error"
	OutcomeNetworkFailure Outcome = "network_failure"
	OutcomeParseFailure   Outcome = "parse_failure"
)

// Quote is the short-lived result of one priceoverview call. It is meant to
// be threaded from the fetch step into the subsequent acquire call, not
// kept around as session state.
//
// On any outcome other than Success the price is 0 and the display name
// falls back to the queried market name. A Success with price 0 means the
// item was fetched but has no listed price right now.
type Quote struct {
	MarketName  string  `json:"market_name"`
	DisplayName string  `json:"display_name"`
	Price       float64 `json:"price"`
	Outcome     Outcome `json:"outcome"`
	StatusCode  int     `json:"status_code,omitempty"` // Set for http_error
}

// OK reports whether the fetch itself succeeded.
func (q Quote) OK() bool {
	return q.Outcome == OutcomeSuccess
}

// priceOverviewResponse is the payload of the priceoverview endpoint.
// Prices are locale-formatted strings ("$1,234.56") and go through the
// normalizer before use.
type priceOverviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
}
