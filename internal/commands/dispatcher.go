package commands

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/analytics"
	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/logging"
	"github.com/dmitrijs2005/storekeeper/internal/models"
	"github.com/dmitrijs2005/storekeeper/internal/repositories"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
)

// Dispatcher executes commands against the repositories.
type Dispatcher struct {
	branches repositories.BranchRepository
	sales    repositories.SaleRepository
	clock    timex.Clock
	log      logging.Logger
}

// NewDispatcher wires a Dispatcher. clock stamps new sales and anchors the
// weekly window.
func NewDispatcher(branches repositories.BranchRepository, sales repositories.SaleRepository, clock timex.Clock, log logging.Logger) *Dispatcher {
	return &Dispatcher{branches: branches, sales: sales, clock: clock, log: log}
}

// Execute runs cmd. Report kinds that find nothing to aggregate return
// common.ErrNoDataForBranch / common.ErrNoDataForProduct; data faults in the
// sales log surface as common.ErrMalformedRecord.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (Result, error) {
	d.log.Debug(ctx, "execute command", "kind", cmd.Kind.String(), "mutating", cmd.Kind.Mutating())

	switch cmd.Kind {
	case KindAddBranch:
		return d.addBranch(ctx, cmd.Branch)
	case KindAddSale:
		return d.addSale(ctx, cmd.Sale)
	case KindLogout:
		return Result{Kind: KindLogout}, nil
	case KindMonthlySalesByBranch, KindPriceStatistics, KindWeeklySalesNetwork,
		KindTotalSalesAmount, KindMonthlySalesAllBranches:
		return d.report(ctx, cmd)
	default:
		return Result{}, fmt.Errorf("%w: %s", common.ErrUnknownCommand, cmd.Kind)
	}
}

func (d *Dispatcher) addBranch(ctx context.Context, b models.Branch) (Result, error) {
	if err := d.branches.Add(ctx, b); err != nil {
		return Result{}, fmt.Errorf("add branch: %w", err)
	}
	d.log.Info(ctx, "branch added", "branch_id", b.ID, "name", b.Name)
	return Result{Kind: KindAddBranch, Branch: &b}, nil
}

func (d *Dispatcher) addSale(ctx context.Context, in SaleInput) (Result, error) {
	if in.Amount <= 0 {
		return Result{}, fmt.Errorf("%w: %d", common.ErrInvalidAmount, in.Amount)
	}
	s := models.Sale{
		BranchID:  in.BranchID,
		ProductID: in.ProductID,
		Amount:    in.Amount,
		Date:      d.clock.Today(),
	}
	if err := d.sales.Add(ctx, s); err != nil {
		return Result{}, fmt.Errorf("add sale: %w", err)
	}
	d.log.Info(ctx, "sale added", "branch_id", s.BranchID, "product_id", s.ProductID, "amount", s.Amount)
	return Result{Kind: KindAddSale, Sale: &s}, nil
}

func (d *Dispatcher) report(ctx context.Context, cmd Command) (Result, error) {
	sales, err := d.sales.GetAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load sales: %w", err)
	}

	res := Result{Kind: cmd.Kind}
	switch cmd.Kind {
	case KindMonthlySalesByBranch:
		bs, err := analytics.MonthlySalesByBranch(sales, cmd.BranchID)
		if err != nil {
			return Result{}, err
		}
		res.BranchSales = &bs

	case KindPriceStatistics:
		ps, err := analytics.PriceStatistics(sales, cmd.ProductID)
		if err != nil {
			return Result{}, err
		}
		res.PriceStats = &ps

	case KindWeeklySalesNetwork:
		w := analytics.WeeklySalesNetwork(sales, d.clock.Today())
		res.Weekly = &w

	case KindTotalSalesAmount:
		total := analytics.TotalSalesAmount(sales)
		res.Total = &total

	case KindMonthlySalesAllBranches:
		branches, err := d.branches.GetAll(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("load branches: %w", err)
		}
		n := analytics.MonthlySalesAllBranches(branches, sales)
		if err := n.OrphanError(); err != nil {
			d.log.Warn(ctx, "sales reference unknown branches", "error", err)
		}
		res.Network = &n
	}
	return res, nil
}
