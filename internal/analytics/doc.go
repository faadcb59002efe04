// Package analytics holds the read-only aggregations over the sales log.
//
// All functions are pure: they take already loaded entities and return a
// small result value. Empty input is handled per aggregation:
//
//   - MonthlySalesByBranch and PriceStatistics return ErrNoDataForBranch /
//     ErrNoDataForProduct and compute nothing.
//   - WeeklySalesNetwork and TotalSalesAmount return zero totals (and a zero
//     mean) for an empty window or log.
//
// MonthlySalesAllBranches keys totals by the branch list; sales that name a
// branch missing from the list are kept out of the keyed totals and returned
// as orphans instead.
package analytics
