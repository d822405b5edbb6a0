package ledger

// Holding is the ledger record for one market item identity.
type Holding struct {
	MarketName   string  `json:"market_name"`   // Unique identity, immutable once created
	DisplayName  string  `json:"display_name"`  // Cleaned human-readable label
	Quantity     int64   `json:"qty"`           // Units held, non-negative
	BuyPrice     float64 `json:"buy_price"`     // Quantity-weighted average cost per unit
	CurrentPrice float64 `json:"current_price"` // Last observed market price, 0 until fetched
}

// ValuationLine is one holding with its derived figures.
type ValuationLine struct {
	Holding
	CostBasis   float64 `json:"cost_basis"`   // BuyPrice * Quantity
	MarketValue float64 `json:"market_value"` // CurrentPrice * Quantity
	Profit      float64 `json:"profit"`       // MarketValue - CostBasis
}

// ValuationTotals aggregates the per-item figures.
type ValuationTotals struct {
	TotalCost        float64 `json:"total_cost"`
	TotalMarketValue float64 `json:"total_market_value"`
	TotalProfit      float64 `json:"total_profit"`
}

// Valuation is a read-only projection of the full ledger. It is recomputed
// from stored holdings on every call; nothing here is persisted.
type Valuation struct {
	Items  []ValuationLine `json:"items"`
	Totals ValuationTotals `json:"totals"`
}

// ImportRecord is one row of an external reconciliation batch. Numeric
// fields stay textual so the engine can count unparseable rows as skips
// instead of failing the whole batch.
type ImportRecord struct {
	MarketName   string
	DisplayName  string
	Quantity     string
	BuyPrice     string
	CurrentPrice string
}

// ImportSummary reports what a reconciliation batch actually did.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
