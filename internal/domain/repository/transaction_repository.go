package repository

import (
	"context"
	"time"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

// TransactionFilterParams represents filter parameters for transaction listing
type TransactionFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.TransactionStatus
	CustomerCode string
	StartDate    *time.Time
	EndDate      *time.Time
}

// TransactionRepository defines data access for transactions
type TransactionRepository interface {
	// Create inserts the transaction header and its line items atomically
	Create(ctx context.Context, transaction *entity.Transaction, details []entity.TransactionDetail) error
	GetByNumber(ctx context.Context, number string) (*entity.Transaction, error)
	GetWithDetails(ctx context.Context, number string) (*entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	UpdateStatus(ctx context.Context, number string, status enum.TransactionStatus) error
	// Delete removes the transaction; details and payments go with it (cascade)
	Delete(ctx context.Context, number string) error

	// NextSequence returns the maximum invoice sequence among transactions
	// dated in the given calendar month, plus one.
	NextSequence(ctx context.Context, year int, month time.Month) (int64, error)
}
