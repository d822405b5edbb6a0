package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/againullin/steamfolio/internal/modules/ledger"
)

func sampleValuation() *ledger.Valuation {
	return &ledger.Valuation{
		Items: []ledger.ValuationLine{
			{
				Holding:     ledger.Holding{MarketName: "winner", DisplayName: "winner", Quantity: 2, BuyPrice: 10, CurrentPrice: 12},
				CostBasis:   20,
				MarketValue: 24,
				Profit:      4,
			},
			{
				Holding:     ledger.Holding{MarketName: "loser", DisplayName: "loser", Quantity: 1, BuyPrice: 10, CurrentPrice: 7},
				CostBasis:   10,
				MarketValue: 7,
				Profit:      -3,
			},
		},
		Totals: ledger.ValuationTotals{TotalCost: 30, TotalMarketValue: 31, TotalProfit: 1},
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	generated := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, WriteHTML(&buf, sampleValuation(), generated))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Date Created: 2026-09-01 12:00:00")
	assert.Contains(t, out, "winner")
	assert.Contains(t, out, "loser")

	// Profit figures are signed and class-tagged by sign; the plus sign
	// must survive rendering literally, not as an HTML entity
	assert.Contains(t, out, `class="profit-good">+4.00`)
	assert.Contains(t, out, `class="profit-bad">-3.00`)
	assert.Contains(t, out, `class="profit-good">+1.00`)
	assert.NotContains(t, out, "&#43;")

	// Totals row carries the aggregates at 2 fractional digits
	assert.Contains(t, out, ">30.00<")
	assert.Contains(t, out, ">31.00<")
}

func TestWriteHTML_EscapesMarketNames(t *testing.T) {
	v := &ledger.Valuation{
		Items: []ledger.ValuationLine{
			{Holding: ledger.Holding{MarketName: `<script>alert("x")</script>`, Quantity: 1}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, v, time.Now()))

	assert.NotContains(t, buf.String(), "<script>alert")
}

func TestWriteHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, &ledger.Valuation{}, time.Now()))

	out := buf.String()
	assert.Contains(t, out, "TOTAL:")
	assert.Contains(t, out, `class="profit-good">+0.00`)
	assert.False(t, strings.Contains(out, `class="profit-bad"`), "empty report should not show losses")
}
