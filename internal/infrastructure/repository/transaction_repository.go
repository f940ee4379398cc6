package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	domainRepo "github.com/tokosakti/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction, details []entity.TransactionDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].TransactionNumber = transaction.Number
		}
		return tx.Create(&details).Error
	})
}

func (r *transactionRepository) GetByNumber(ctx context.Context, number string) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&transaction, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, number string) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Details.Product").
		Preload("Details.Product.Category").
		Preload("Payments").
		First(&transaction, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if params.Search != "" {
		query = query.Where("number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerCode != "" {
		query = query.Where("customer_code = ?", params.CustomerCode)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&transactions).Error

	return transactions, total, err
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, number string, status enum.TransactionStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("number = ?", number).
		Update("status", status).Error
}

func (r *transactionRepository) Delete(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).Delete(&entity.Transaction{}, "number = ?", number).Error
}

func (r *transactionRepository) NextSequence(ctx context.Context, year int, month time.Month) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(number, '-', 4) AS BIGINT)), 0)
		FROM transactions
		WHERE EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?
	`, year, int(month)).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
