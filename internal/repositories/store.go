package repositories

import (
	"context"

	"github.com/dmitrijs2005/storekeeper/internal/models"
	"github.com/dmitrijs2005/storekeeper/internal/records"
)

// StoreBranchRepository implements BranchRepository over a RecordStore.
type StoreBranchRepository struct {
	store RecordStore
}

func NewBranchRepository(s RecordStore) *StoreBranchRepository {
	return &StoreBranchRepository{store: s}
}

func (r *StoreBranchRepository) Add(ctx context.Context, b models.Branch) error {
	return r.store.Append(ctx, records.KindBranches, b.Row())
}

func (r *StoreBranchRepository) GetAll(ctx context.Context) ([]models.Branch, error) {
	return decodeAll(ctx, r.store, records.KindBranches, models.BranchFromRow)
}

// StoreSaleRepository implements SaleRepository over a RecordStore.
type StoreSaleRepository struct {
	store RecordStore
}

func NewSaleRepository(s RecordStore) *StoreSaleRepository {
	return &StoreSaleRepository{store: s}
}

func (r *StoreSaleRepository) Add(ctx context.Context, s models.Sale) error {
	return r.store.Append(ctx, records.KindSales, s.Row())
}

func (r *StoreSaleRepository) GetAll(ctx context.Context) ([]models.Sale, error) {
	return decodeAll(ctx, r.store, records.KindSales, models.SaleFromRow)
}

// StoreProductRepository implements ProductRepository over a RecordStore.
type StoreProductRepository struct {
	store RecordStore
}

func NewProductRepository(s RecordStore) *StoreProductRepository {
	return &StoreProductRepository{store: s}
}

func (r *StoreProductRepository) Add(ctx context.Context, p models.Product) error {
	return r.store.Append(ctx, records.KindProducts, p.Row())
}

func (r *StoreProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return decodeAll(ctx, r.store, records.KindProducts, models.ProductFromRow)
}

// StoreUserRepository implements UserRepository over a RecordStore.
type StoreUserRepository struct {
	store RecordStore
}

func NewUserRepository(s RecordStore) *StoreUserRepository {
	return &StoreUserRepository{store: s}
}

func (r *StoreUserRepository) GetAll(ctx context.Context) ([]models.Credential, error) {
	return decodeAll(ctx, r.store, records.KindUsers, models.CredentialFromRow)
}
