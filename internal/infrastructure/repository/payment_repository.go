package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	domainRepo "github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByNumber(ctx context.Context, number string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByTransaction(ctx context.Context, transactionNumber string) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_number = ?", transactionNumber).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) Delete(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).Delete(&entity.Payment{}, "number = ?", number).Error
}

func (r *paymentRepository) NextSequence(ctx context.Context, date time.Time) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(number, '-', 3) AS BIGINT)), 0)
		FROM payments
		WHERE date = ?
	`, date.Format("2006-01-02")).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
