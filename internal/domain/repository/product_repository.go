package repository

import (
	"context"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

// ProductFilterParams represents filter parameters for product listing
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uint
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ProductRepository defines data access for products
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)

	// ForEachBatch streams all products in code order, batchSize rows at a
	// time. Used by the CSV export to bound memory.
	ForEachBatch(ctx context.Context, batchSize int, fn func(products []entity.Product) error) error

	// NextSerial returns the next product code serial: the maximum numeric
	// value of the first 12 digits over the whole table, plus one.
	NextSerial(ctx context.Context) (int64, error)

	// AdjustStock atomically adds delta to the product's stock. A negative
	// delta that would drive stock below zero fails.
	AdjustStock(ctx context.Context, code string, delta int) error
}
