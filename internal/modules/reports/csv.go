// Package reports renders ledger snapshots to external formats. Generators
// consume the engine's read-only valuation and never touch the store.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/againullin/steamfolio/internal/modules/ledger"
)

// csvHeader is the shared export/import column order.
var csvHeader = []string{"market_name", "display_name", "qty", "buy_price", "current_price"}

// WriteCSV writes one row per holding in the fixed column order. Prices are
// formatted with 2 fractional digits; presentation rounding happens here,
// not in the ledger.
func WriteCSV(w io.Writer, holdings []ledger.Holding) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range holdings {
		row := []string{
			h.MarketName,
			h.DisplayName,
			strconv.FormatInt(h.Quantity, 10),
			fmt.Sprintf("%.2f", h.BuyPrice),
			fmt.Sprintf("%.2f", h.CurrentPrice),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseCSV reads an import file in the export column order, skipping the
// header row. Rows with fewer than 5 columns are dropped here and counted;
// everything else is handed to the ledger as raw strings so the engine can
// apply its own per-record skip rules.
func ParseCSV(r io.Reader, log zerolog.Logger) ([]ledger.ImportRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records []ledger.ImportRecord
	skipped := 0
	line := 1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Warn().Err(err).Int("row", line).Msg("Skipping malformed CSV row")
			skipped++
			continue
		}
		if len(row) < 5 {
			log.Warn().Int("row", line).Int("columns", len(row)).Msg("Skipping CSV row: not enough columns")
			skipped++
			continue
		}

		records = append(records, ledger.ImportRecord{
			MarketName:   row[0],
			DisplayName:  row[1],
			Quantity:     row[2],
			BuyPrice:     row[3],
			CurrentPrice: row[4],
		})
	}

	return records, skipped, nil
}
