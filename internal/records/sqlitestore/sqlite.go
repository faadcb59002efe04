// Package sqlitestore keeps containers as rows of an embedded SQLite
// database. Several containers may share one database file; each is keyed by
// its kind name. Schema changes are goose migrations embedded in the binary.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storekeeper/internal/dbx"
	"github.com/dmitrijs2005/storekeeper/internal/records"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

var migrateMu sync.Mutex

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenDB opens the database at dsn and migrates it.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Pool opens one database per distinct path on first use and hands out
// container backends bound to it.
type Pool struct {
	ctx context.Context
	mu  sync.Mutex
	dbs map[string]*sql.DB
}

// NewPool returns an empty pool. ctx bounds the migrations run on open.
func NewPool(ctx context.Context) *Pool {
	return &Pool{ctx: ctx, dbs: make(map[string]*sql.DB)}
}

// Open is the records.Opener for records.FormatSQLite.
func (p *Pool) Open(loc records.Location) (records.Backend, error) {
	if loc.Path == "" {
		return nil, fmt.Errorf("sqlite %s: empty path", loc.Kind)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	db, ok := p.dbs[loc.Path]
	if !ok {
		var err error
		if db, err = OpenDB(p.ctx, loc.Path); err != nil {
			return nil, err
		}
		p.dbs[loc.Path] = db
	}
	return NewBackend(db, loc.Kind.String()), nil
}

// Close closes every database opened by the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for path, db := range p.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
		delete(p.dbs, path)
	}
	return errors.Join(errs...)
}

// Backend is one container inside a database.
type Backend struct {
	db        *sql.DB
	container string
}

// NewBackend binds container to an already migrated database.
func NewBackend(db *sql.DB, container string) *Backend {
	return &Backend{db: db, container: container}
}

// Load returns the container rows in insertion order.
func (b *Backend) Load(ctx context.Context) ([]records.Row, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT fields FROM records WHERE container = ? ORDER BY id`, b.container)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := []records.Row{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var row records.Row
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Append registers the container with its header on first use and inserts
// rows, all in one transaction.
func (b *Backend) Append(ctx context.Context, header records.Row, rows ...records.Row) error {
	h, err := json.Marshal(header)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO containers (name, header) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
			b.container, string(h)); err != nil {
			return fmt.Errorf("failed to register container: %w", err)
		}
		for _, r := range rows {
			if r == nil {
				r = records.Row{}
			}
			f, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO records (container, fields) VALUES (?, ?)`,
				b.container, string(f)); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
		return nil
	})
}

// Header returns the stored header of the container, or nil if the
// container has not been created.
func (b *Backend) Header(ctx context.Context) (records.Row, error) {
	var raw string
	err := b.db.QueryRowContext(ctx, `SELECT header FROM containers WHERE name = ?`, b.container).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get header: %w", err)
	}
	var h records.Row
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, err
	}
	return h, nil
}
