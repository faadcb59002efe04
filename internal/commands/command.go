// Package commands turns operator choices into units of work.
//
// A Command is a tagged value: Kind says what to do and only the fields that
// kind needs are set. Dispatcher.Execute is the single place that matches on
// the tag; it either persists one new record or computes one report, and
// hands back a Result for the presentation layer instead of printing.
package commands

import (
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/analytics"
	"github.com/dmitrijs2005/storekeeper/internal/models"
)

// Kind tags a command.
type Kind int

const (
	KindAddBranch Kind = iota + 1
	KindAddSale
	KindMonthlySalesByBranch
	KindPriceStatistics
	KindWeeklySalesNetwork
	KindTotalSalesAmount
	KindMonthlySalesAllBranches
	KindLogout
)

var kindNames = map[Kind]string{
	KindAddBranch:               "add_branch",
	KindAddSale:                 "add_sale",
	KindMonthlySalesByBranch:    "monthly_sales_by_branch",
	KindPriceStatistics:         "price_statistics",
	KindWeeklySalesNetwork:      "weekly_sales_network",
	KindTotalSalesAmount:        "total_sales_amount",
	KindMonthlySalesAllBranches: "monthly_sales_all_branches",
	KindLogout:                  "logout",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Mutating reports whether commands of this kind persist a record.
func (k Kind) Mutating() bool {
	return k == KindAddBranch || k == KindAddSale
}

// SaleInput is what the operator supplies for a new sale; the date is
// stamped at execution.
type SaleInput struct {
	BranchID  string
	ProductID string
	Amount    int64
}

// Command is one unit of work with its parameters bound.
type Command struct {
	Kind      Kind
	BranchID  string
	ProductID string
	Branch    models.Branch
	Sale      SaleInput
}

func AddBranch(b models.Branch) Command { return Command{Kind: KindAddBranch, Branch: b} }

func AddSale(in SaleInput) Command { return Command{Kind: KindAddSale, Sale: in} }

func MonthlySalesByBranch(branchID string) Command {
	return Command{Kind: KindMonthlySalesByBranch, BranchID: branchID}
}

func PriceStatistics(productID string) Command {
	return Command{Kind: KindPriceStatistics, ProductID: productID}
}

func WeeklySalesNetwork() Command { return Command{Kind: KindWeeklySalesNetwork} }

func TotalSalesAmount() Command { return Command{Kind: KindTotalSalesAmount} }

func MonthlySalesAllBranches() Command { return Command{Kind: KindMonthlySalesAllBranches} }

func Logout() Command { return Command{Kind: KindLogout} }

// Result is the outcome of Execute. Kind mirrors the command; exactly the
// field belonging to that kind is set.
type Result struct {
	Kind        Kind
	Branch      *models.Branch
	Sale        *models.Sale
	BranchSales *analytics.BranchSales
	PriceStats  *analytics.PriceStats
	Weekly      *analytics.WeeklySummary
	Total       *int64
	Network     *analytics.NetworkTotals
}
