package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storekeeper/internal/analytics"
	"github.com/dmitrijs2005/storekeeper/internal/commands"
	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
	"github.com/shopspring/decimal"
)

const (
	histogramBins = 10
	barWidth      = 40
)

func (a *App) lkr(v int64) string {
	return a.printer.Sprintf("%d LKR", v)
}

func (a *App) lkrDec(d decimal.Decimal) string {
	return a.printer.Sprintf("%.2f LKR", d.InexactFloat64())
}

// bar scales n against max into at most barWidth marks. Any n > 0 gets at
// least one mark.
func bar(n, max int64) string {
	if n <= 0 || max <= 0 {
		return ""
	}
	w := int(float64(n) / float64(max) * barWidth)
	if w == 0 {
		w = 1
	}
	return strings.Repeat("#", w)
}

func (a *App) renderError(cmd commands.Command, err error) {
	switch {
	case errors.Is(err, common.ErrNoDataForBranch):
		fmt.Fprintf(a.out, "No sales data found for Branch ID %s.\n", cmd.BranchID)
	case errors.Is(err, common.ErrNoDataForProduct):
		fmt.Fprintf(a.out, "No sales data found for Product ID %s.\n", cmd.ProductID)
	case errors.Is(err, common.ErrMalformedRecord):
		fmt.Fprintf(a.out, "Data error: %v\n", err)
	case errors.Is(err, common.ErrInvalidAmount):
		fmt.Fprintln(a.out, "Invalid amount: enter a positive whole number of LKR.")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) render(res commands.Result) {
	switch res.Kind {
	case commands.KindAddBranch:
		fmt.Fprintf(a.out, "Branch %s added successfully.\n", res.Branch.Name)
	case commands.KindAddSale:
		fmt.Fprintln(a.out, "Sale added successfully.")
	case commands.KindMonthlySalesByBranch:
		a.renderBranchSales(*res.BranchSales)
	case commands.KindPriceStatistics:
		a.renderPriceStats(*res.PriceStats)
	case commands.KindWeeklySalesNetwork:
		a.renderWeekly(*res.Weekly)
	case commands.KindTotalSalesAmount:
		fmt.Fprintln(a.out, "\n===== Total Sales Amount Analysis =====")
		fmt.Fprintf(a.out, "Total Sales Amount: %s\n", a.lkr(*res.Total))
	case commands.KindMonthlySalesAllBranches:
		a.renderNetwork(*res.Network)
	}
}

func (a *App) renderBranchSales(bs analytics.BranchSales) {
	fmt.Fprintf(a.out, "\n===== Monthly Sales Analysis - Branch %s =====\n", bs.BranchID)
	var total int64
	for _, v := range bs.Amounts {
		total += v
	}
	fmt.Fprintf(a.out, "Sales: %d, Total: %s\n", len(bs.Amounts), a.lkr(total))
	fmt.Fprintln(a.out, "Distribution of sales amounts (LKR):")

	bins := analytics.Histogram(bs.Amounts, histogramBins)
	var peak int64
	for _, b := range bins {
		peak = max(peak, int64(b.Count))
	}
	for _, b := range bins {
		fmt.Fprintf(a.out, "%12s - %-12s | %-*s %d\n",
			a.printer.Sprintf("%.1f", b.Lower), a.printer.Sprintf("%.1f", b.Upper),
			barWidth, bar(int64(b.Count), peak), b.Count)
	}
}

func (a *App) renderPriceStats(ps analytics.PriceStats) {
	fmt.Fprintf(a.out, "\n===== Price Analysis - Product %s =====\n", ps.ProductID)
	fmt.Fprintf(a.out, "Sales Count: %d\n", ps.Count)
	fmt.Fprintf(a.out, "Average Price: %s\n", a.lkrDec(ps.Mean))
	fmt.Fprintf(a.out, "Maximum Price: %s\n", a.lkr(ps.Max))
	fmt.Fprintf(a.out, "Minimum Price: %s\n", a.lkr(ps.Min))
	fmt.Fprintf(a.out, "Median Price: %s\n", a.lkrDec(ps.Median))
	fmt.Fprintf(a.out, "Spread: %s |-- [%s | %s | %s] --| %s\n",
		a.printer.Sprintf("%d", ps.Min),
		a.printer.Sprintf("%.2f", ps.Q1.InexactFloat64()),
		a.printer.Sprintf("%.2f", ps.Median.InexactFloat64()),
		a.printer.Sprintf("%.2f", ps.Q3.InexactFloat64()),
		a.printer.Sprintf("%d", ps.Max))
}

func (a *App) renderWeekly(w analytics.WeeklySummary) {
	fmt.Fprintln(a.out, "\n===== Weekly Sales Analysis - Supermarket Network =====")
	fmt.Fprintf(a.out, "Week: %s to %s (%d sales)\n", timex.FormatDate(w.Start), timex.FormatDate(w.End), w.Count)
	fmt.Fprintf(a.out, "Total Sales for the Week: %s\n", a.lkr(w.Total))
	fmt.Fprintf(a.out, "Average Sale Amount: %s\n", a.lkrDec(w.Mean))
}

func (a *App) renderNetwork(n analytics.NetworkTotals) {
	fmt.Fprintln(a.out, "\n===== Monthly Sales Analysis of All Branches =====")
	if len(n.Totals) == 0 {
		fmt.Fprintln(a.out, "No branches registered.")
	}

	width := 0
	var peak int64
	for _, t := range n.Totals {
		width = max(width, len(t.BranchID))
		peak = max(peak, t.Total)
	}
	for _, t := range n.Totals {
		fmt.Fprintf(a.out, "%-*s | %-*s %s\n", width, t.BranchID, barWidth, bar(t.Total, peak), a.lkr(t.Total))
	}

	if n.HasOrphans() {
		parts := make([]string, len(n.Orphans))
		for i, o := range n.Orphans {
			parts[i] = fmt.Sprintf("%s (%s)", o.BranchID, a.lkr(o.Total))
		}
		fmt.Fprintf(a.out, "Warning: sales reference unknown branches: %s\n", strings.Join(parts, ", "))
	}
}
