// Package records is the flat record storage layer.
//
// # Overview
//
// Every entity kind (users, branches, products, sales) lives in its own
// container: an ordered sequence of rows of strings with a fixed header that
// is written once, when the container is created. Rows are only ever
// appended.
//
// How a container is read and written is decided by a Backend. Backends are
// looked up in a Registry keyed by format tag ("csv", "xlsx", "sqlite"), so a
// new storage format plugs in by registering an Opener without touching any
// caller.
//
// Key Types
//
//   - type Kind     : container kind and its header
//   - type Row      : one record, fields in header order
//   - type Backend  : Load / Append contract of a storage strategy
//   - type Registry : format tag -> Opener table
//   - type Store    : configured locations + registry; the factory callers use
//
// Typical Usage
//
//	reg := records.NewRegistry()
//	reg.Register(records.FormatCSV, csvstore.Open)
//	store := records.NewStore(reg, locations)
//	_ = store.Ensure(ctx)
//	rows, _ := store.Load(ctx, records.KindSales)
//
// No rows are cached: every Load re-reads the whole container.
package records
