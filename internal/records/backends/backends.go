// Package backends assembles the record store from every storage strategy
// the shell ships with.
package backends

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/storekeeper/internal/filex"
	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/dmitrijs2005/storekeeper/internal/records/csvstore"
	"github.com/dmitrijs2005/storekeeper/internal/records/sqlitestore"
	"github.com/dmitrijs2005/storekeeper/internal/records/xlsxstore"
)

// NewRegistry registers the csv, xlsx and sqlite strategies. The returned
// pool owns the sqlite handles and must be closed by the caller.
func NewRegistry(ctx context.Context) (*records.Registry, *sqlitestore.Pool) {
	pool := sqlitestore.NewPool(ctx)

	reg := records.NewRegistry()
	reg.Register(records.FormatCSV, csvstore.Open)
	reg.Register(records.FormatXLSX, xlsxstore.Open)
	reg.Register(records.FormatSQLite, pool.Open)
	return reg, pool
}

// Open creates the directories of locs, builds the store over them and makes
// sure every container exists with its header. close releases the sqlite
// handles.
func Open(ctx context.Context, locs []records.Location) (store *records.Store, close func() error, err error) {
	for _, l := range locs {
		if _, err := filex.EnsureDir(filepath.Dir(l.Path)); err != nil {
			return nil, nil, err
		}
	}

	reg, pool := NewRegistry(ctx)
	store = records.NewStore(reg, locs)
	if err := store.Ensure(ctx); err != nil {
		_ = pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
