package reports

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/againullin/steamfolio/internal/modules/ledger"
)

// reportTemplate renders the portfolio as a static document. Profit cells
// carry a profit-good / profit-bad class so gains and losses are visually
// distinct without any interactivity.
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	// template.HTML keeps the leading + from being escaped to &#43;;
	// safe because the value is a fixed-format float, never user input.
	"signed": func(v float64) template.HTML { return template.HTML(fmt.Sprintf("%+.2f", v)) },
	"profitClass": func(v float64) string {
		if v >= 0 {
			return "profit-good"
		}
		return "profit-bad"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Steam Market Portfolio Report</title>
<style>
body { font-family: 'Consolas', monospace; background-color: #0F1626; color: #E0E0E0; padding: 20px; }
.header { color: #00FFFF; text-align: center; border-bottom: 2px solid #FF00FF; padding-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; border: 1px solid #8A2BE2; }
th, td { padding: 12px 15px; text-align: center; border: 1px solid #2C3E50; }
th { background-color: #141E46; color: #00FFFF; font-size: 11px; }
tr:nth-child(even) { background-color: #053B50; }
tr:nth-child(odd) { background-color: #1A2238; }
.profit-good { color: #00FFFF; font-weight: bold; }
.profit-bad { color: #FF3333; font-weight: bold; }
.total-row td { background-color: #141E46; color: #FF00FF; font-weight: bold; font-size: 12px; }
</style>
</head>
<body>
<h1 class="header">Steam Market Portfolio Report</h1>
<p style="color: #808080;">Date Created: {{.GeneratedAt}}</p>
<table>
<thead>
<tr>
<th>Name</th>
<th>Qty</th>
<th>Buy Price ($)</th>
<th>Current Price ($)</th>
<th>Total Cost ($)</th>
<th>Total Value ($)</th>
<th>Profit ($)</th>
</tr>
</thead>
<tbody>
{{range .Items}}<tr>
<td style="text-align: left;">{{.MarketName}}</td>
<td>{{.Quantity}}</td>
<td>{{money .BuyPrice}}</td>
<td>{{money .CurrentPrice}}</td>
<td>{{money .CostBasis}}</td>
<td>{{money .MarketValue}}</td>
<td class="{{profitClass .Profit}}">{{signed .Profit}}</td>
</tr>
{{end}}<tr class="total-row">
<td colspan="4" style="text-align: right;">TOTAL:</td>
<td>{{money .Totals.TotalCost}}</td>
<td>{{money .Totals.TotalMarketValue}}</td>
<td class="{{profitClass .Totals.TotalProfit}}">{{signed .Totals.TotalProfit}}</td>
</tr>
</tbody>
</table>
</body>
</html>
`))

type htmlReport struct {
	GeneratedAt string
	Items       []ledger.ValuationLine
	Totals      ledger.ValuationTotals
}

// WriteHTML renders the valuation snapshot as a self-contained HTML report.
// Generated fresh on every call; nothing is cached or persisted.
func WriteHTML(w io.Writer, v *ledger.Valuation, generatedAt time.Time) error {
	data := htmlReport{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Items:       v.Items,
		Totals:      v.Totals,
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	return nil
}
