package repository

import (
	"context"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

// CustomerRepository defines data access for customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByCode(ctx context.Context, code string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)

	// NextSequence returns the maximum numeric part of existing customer
	// codes over the whole table, plus one.
	NextSequence(ctx context.Context) (int64, error)
}
