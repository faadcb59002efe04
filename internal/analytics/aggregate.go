package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/models"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
	"github.com/shopspring/decimal"
)

// BranchSales is the amount distribution of one branch, in log order.
type BranchSales struct {
	BranchID string
	Amounts  []int64
}

// MonthlySalesByBranch selects the amounts of every sale of branchID.
func MonthlySalesByBranch(sales []models.Sale, branchID string) (BranchSales, error) {
	var amounts []int64
	for _, s := range sales {
		if s.BranchID == branchID {
			amounts = append(amounts, s.Amount)
		}
	}
	if len(amounts) == 0 {
		return BranchSales{}, fmt.Errorf("%w: %q", common.ErrNoDataForBranch, branchID)
	}
	return BranchSales{BranchID: branchID, Amounts: amounts}, nil
}

// PriceStats summarises the sale amounts of one product.
type PriceStats struct {
	ProductID string
	Count     int
	Mean      decimal.Decimal
	Min       int64
	Max       int64
	Median    decimal.Decimal
	Q1        decimal.Decimal
	Q3        decimal.Decimal
}

// PriceStatistics computes mean, min, max, median and quartiles of the
// amounts sold for productID.
func PriceStatistics(sales []models.Sale, productID string) (PriceStats, error) {
	var amounts []int64
	for _, s := range sales {
		if s.ProductID == productID {
			amounts = append(amounts, s.Amount)
		}
	}
	if len(amounts) == 0 {
		return PriceStats{}, fmt.Errorf("%w: %q", common.ErrNoDataForProduct, productID)
	}

	slices.Sort(amounts)
	return PriceStats{
		ProductID: productID,
		Count:     len(amounts),
		Mean:      mean(amounts),
		Min:       amounts[0],
		Max:       amounts[len(amounts)-1],
		Median:    quartile(amounts, 2),
		Q1:        quartile(amounts, 1),
		Q3:        quartile(amounts, 3),
	}, nil
}

// WeeklySummary covers the Monday..Sunday week around a given day.
type WeeklySummary struct {
	Start time.Time
	End   time.Time
	Count int
	Total int64
	// Mean is zero when no sale falls in the week.
	Mean decimal.Decimal
}

// WeeklySalesNetwork totals every sale dated inside the ISO week that
// contains today, bounds inclusive.
func WeeklySalesNetwork(sales []models.Sale, today time.Time) WeeklySummary {
	start, end := timex.WeekBounds(today)

	var amounts []int64
	for _, s := range sales {
		if timex.Within(s.Date, start, end) {
			amounts = append(amounts, s.Amount)
		}
	}

	w := WeeklySummary{Start: start, End: end, Count: len(amounts), Total: sum(amounts), Mean: decimal.Zero}
	if len(amounts) > 0 {
		w.Mean = mean(amounts)
	}
	return w
}

// TotalSalesAmount sums every amount in the log.
func TotalSalesAmount(sales []models.Sale) int64 {
	var total int64
	for _, s := range sales {
		total += s.Amount
	}
	return total
}

// BranchTotal is the summed amount of one branch.
type BranchTotal struct {
	BranchID string
	Total    int64
}

// NetworkTotals holds per-branch totals in branch-list order. Orphans are
// the totals of branch ids that only appear in sales, in first-seen order.
type NetworkTotals struct {
	Totals  []BranchTotal
	Orphans []BranchTotal
}

// HasOrphans reports whether some sales reference unknown branches.
func (n NetworkTotals) HasOrphans() bool { return len(n.Orphans) > 0 }

// OrphanError describes the orphans as a common.ErrUnknownBranchReference
// error, or returns nil if there are none.
func (n NetworkTotals) OrphanError() error {
	if !n.HasOrphans() {
		return nil
	}
	ids := make([]string, len(n.Orphans))
	for i, o := range n.Orphans {
		ids[i] = o.BranchID
	}
	return fmt.Errorf("%w: %q", common.ErrUnknownBranchReference, ids)
}

// MonthlySalesAllBranches sums sales per branch. Every listed branch gets an
// entry, even without sales; a branch listed twice is counted once, at its
// first position.
func MonthlySalesAllBranches(branches []models.Branch, sales []models.Sale) NetworkTotals {
	index := make(map[string]int, len(branches))
	totals := make([]BranchTotal, 0, len(branches))
	for _, b := range branches {
		if _, ok := index[b.ID]; ok {
			continue
		}
		index[b.ID] = len(totals)
		totals = append(totals, BranchTotal{BranchID: b.ID})
	}

	orphanIndex := make(map[string]int)
	var orphans []BranchTotal
	for _, s := range sales {
		if i, ok := index[s.BranchID]; ok {
			totals[i].Total += s.Amount
			continue
		}
		i, ok := orphanIndex[s.BranchID]
		if !ok {
			i = len(orphans)
			orphanIndex[s.BranchID] = i
			orphans = append(orphans, BranchTotal{BranchID: s.BranchID})
		}
		orphans[i].Total += s.Amount
	}

	return NetworkTotals{Totals: totals, Orphans: orphans}
}

func sum(v []int64) int64 {
	var t int64
	for _, x := range v {
		t += x
	}
	return t
}

// mean must not be called with an empty slice.
func mean(v []int64) decimal.Decimal {
	return decimal.NewFromInt(sum(v)).Div(decimal.NewFromInt(int64(len(v))))
}

// quartile returns the k-th quartile (k in 0..4) of sorted with linear
// interpolation between closest ranks; k=2 is the median.
func quartile(sorted []int64, k int) decimal.Decimal {
	scaled := k * (len(sorted) - 1)
	lo, rem := scaled/4, scaled%4
	v := decimal.NewFromInt(sorted[lo])
	if rem == 0 {
		return v
	}
	step := decimal.NewFromInt(sorted[lo+1] - sorted[lo]).Mul(decimal.NewFromInt(int64(rem))).Div(decimal.NewFromInt(4))
	return v.Add(step)
}
