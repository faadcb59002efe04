package commands

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storekeeper/internal/common"
)

// Param says what the shell has to collect before building a command.
type Param int

const (
	ParamNone Param = iota
	ParamBranchID
	ParamProductID
	ParamBranchForm
	ParamSaleForm
)

// MenuEntry binds an operator key to a command kind.
type MenuEntry struct {
	Key   string
	Kind  Kind
	Label string
	Param Param
}

// Menu is the operator menu. There is no option 6.
var Menu = []MenuEntry{
	{Key: "1", Kind: KindAddBranch, Label: "Add a New Branch", Param: ParamBranchForm},
	{Key: "2", Kind: KindAddSale, Label: "Add a New Sale", Param: ParamSaleForm},
	{Key: "3", Kind: KindMonthlySalesByBranch, Label: "Monthly Sales Analysis of a Specific Branch", Param: ParamBranchID},
	{Key: "4", Kind: KindPriceStatistics, Label: "Price Analysis of a Specific Product", Param: ParamProductID},
	{Key: "5", Kind: KindWeeklySalesNetwork, Label: "Weekly Sales Analysis of Supermarket Network"},
	{Key: "7", Kind: KindTotalSalesAmount, Label: "Analysis of Total Sales Amounts of Purchases"},
	{Key: "8", Kind: KindMonthlySalesAllBranches, Label: "Monthly Sales Analysis of All Branches"},
	{Key: "9", Kind: KindLogout, Label: "Log out"},
}

// Lookup finds the menu entry for key, ignoring surrounding blanks.
func Lookup(key string) (MenuEntry, bool) {
	key = strings.TrimSpace(key)
	for _, e := range Menu {
		if e.Key == key {
			return e, true
		}
	}
	return MenuEntry{}, false
}

// Prompt is the question asked for a one-argument entry.
func (e MenuEntry) Prompt() string {
	switch e.Param {
	case ParamBranchID:
		return "Enter Branch ID"
	case ParamProductID:
		return "Enter Product ID"
	default:
		return ""
	}
}

// Build constructs the command of a none- or one-argument entry. Form
// entries (add branch / add sale) are built by the caller from their fields.
func (e MenuEntry) Build(arg string) (Command, error) {
	switch e.Param {
	case ParamNone:
		switch e.Kind {
		case KindWeeklySalesNetwork:
			return WeeklySalesNetwork(), nil
		case KindTotalSalesAmount:
			return TotalSalesAmount(), nil
		case KindMonthlySalesAllBranches:
			return MonthlySalesAllBranches(), nil
		case KindLogout:
			return Logout(), nil
		}
	case ParamBranchID:
		return MonthlySalesByBranch(arg), nil
	case ParamProductID:
		return PriceStatistics(arg), nil
	}
	return Command{}, fmt.Errorf("%w: menu %s (%s) needs a form", common.ErrUnknownCommand, e.Key, e.Kind)
}
