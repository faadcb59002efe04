package repositories

import (
	"context"

	"github.com/dmitrijs2005/storekeeper/internal/models"
	"github.com/dmitrijs2005/storekeeper/internal/records"
)

// RecordStore is the part of *records.Store the repositories need.
type RecordStore interface {
	Load(ctx context.Context, k records.Kind) ([]records.Row, error)
	Append(ctx context.Context, k records.Kind, rows ...records.Row) error
}

// BranchRepository stores branches.
type BranchRepository interface {
	// Add appends b. Identity is not checked for uniqueness.
	Add(ctx context.Context, b models.Branch) error
	// GetAll returns branches in insertion order.
	GetAll(ctx context.Context) ([]models.Branch, error)
}

// SaleRepository stores the sales log.
type SaleRepository interface {
	Add(ctx context.Context, s models.Sale) error
	GetAll(ctx context.Context) ([]models.Sale, error)
}

// ProductRepository stores products.
type ProductRepository interface {
	Add(ctx context.Context, p models.Product) error
	GetAll(ctx context.Context) ([]models.Product, error)
}

// UserRepository reads operator credentials.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.Credential, error)
}

// decodeAll loads kind and decodes every row, stopping at the first fault.
func decodeAll[T any](ctx context.Context, s RecordStore, kind records.Kind, decode func(line int, r records.Row) (T, error)) ([]T, error) {
	rows, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		v, err := decode(models.LineOf(i), r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
