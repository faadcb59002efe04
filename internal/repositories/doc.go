// Package repositories maps entity types onto record containers.
//
// Each repository reads its whole container on every call (the record store
// keeps no cache) and appends new entities as single rows. Decoding follows
// one policy everywhere: the first malformed row aborts the read with a
// models.RowError, so a bad amount or date is never folded into a total.
//
// Key Types
//
//   - type RecordStore       : the Load/Append subset of *records.Store
//   - type BranchRepository  : Add / GetAll for branches
//   - type SaleRepository    : Add / GetAll for sales
//   - type ProductRepository : Add / GetAll for products
//   - type UserRepository    : GetAll for credentials
package repositories
