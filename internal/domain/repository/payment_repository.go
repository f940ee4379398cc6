package repository

import (
	"context"
	"time"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

// PaymentRepository defines data access for payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByNumber(ctx context.Context, number string) (*entity.Payment, error)
	ListByTransaction(ctx context.Context, transactionNumber string) ([]entity.Payment, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error)
	Delete(ctx context.Context, number string) error

	// NextSequence returns the maximum payment sequence among payments dated
	// on the given calendar day, plus one.
	NextSequence(ctx context.Context, date time.Time) (int64, error)
}
