package ledger

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository is the sqlite-backed Store.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new holding repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "ledger").Logger(),
	}
}

// Get returns the holding for a market name, or nil when absent
func (r *Repository) Get(marketName string) (*Holding, error) {
	query := `
		SELECT market_name, display_name, qty, buy_price, current_price
		FROM items WHERE market_name = ?`

	rows, err := r.db.Query(query, strings.TrimSpace(marketName))
	if err != nil {
		return nil, fmt.Errorf("failed to query holding: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading holding: %w", err)
		}
		return nil, nil // Holding not found
	}

	h, err := r.scanHolding(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan holding: %w", err)
	}

	return &h, nil
}

// GetAll returns every holding in the ledger
func (r *Repository) GetAll() ([]Holding, error) {
	query := `
		SELECT market_name, display_name, qty, buy_price, current_price
		FROM items ORDER BY market_name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		h, err := r.scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// Upsert inserts or replaces the holding for its market name
func (r *Repository) Upsert(h Holding) error {
	h.MarketName = strings.TrimSpace(h.MarketName)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO items (market_name, display_name, qty, buy_price, current_price)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(market_name) DO UPDATE SET
			display_name = excluded.display_name,
			qty = excluded.qty,
			buy_price = excluded.buy_price,
			current_price = excluded.current_price`

	_, err = tx.Exec(query,
		h.MarketName,
		h.DisplayName,
		h.Quantity,
		h.BuyPrice,
		h.CurrentPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Debug().Str("market_name", h.MarketName).Msg("Holding upserted")
	return nil
}

// Delete removes a holding and reports whether it existed
func (r *Repository) Delete(marketName string) (bool, error) {
	marketName = strings.TrimSpace(marketName)

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec("DELETE FROM items WHERE market_name = ?", marketName)
	if err != nil {
		return false, fmt.Errorf("failed to delete holding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Info().Str("market_name", marketName).Int64("rows_affected", rowsAffected).Msg("Holding deleted")
	return rowsAffected > 0, nil
}

// scanHolding scans a database row into a Holding struct
func (r *Repository) scanHolding(rows *sql.Rows) (Holding, error) {
	var h Holding
	var displayName sql.NullString
	var buyPrice, currentPrice sql.NullFloat64

	err := rows.Scan(
		&h.MarketName,
		&displayName,
		&h.Quantity,
		&buyPrice,
		&currentPrice,
	)
	if err != nil {
		return h, err
	}

	if displayName.Valid {
		h.DisplayName = displayName.String
	}
	if buyPrice.Valid {
		h.BuyPrice = buyPrice.Float64
	}
	if currentPrice.Valid {
		h.CurrentPrice = currentPrice.Float64
	}

	h.MarketName = strings.TrimSpace(h.MarketName)
	if h.DisplayName == "" {
		h.DisplayName = h.MarketName
	}

	return h, nil
}
