package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/identifier"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	infraRepo "github.com/tokosakti/pos-api/internal/infrastructure/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// TransactionService handles sale transactions
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
	}
}

// TransactionItemInput is one line of a new transaction
type TransactionItemInput struct {
	ProductCode string
	Quantity    int
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	UserID       uuid.UUID
	CustomerCode string
	Date         time.Time
	Notes        *string
	Discount     *decimal.Decimal
	Tax          *decimal.Decimal
	ShippingFee  decimal.Decimal
	Items        []TransactionItemInput
}

// CreateTransaction validates the lines, reserves stock, assigns an invoice
// number scoped to the transaction month, and inserts the header with its
// line items. Unit prices are captured from the product at time of sale.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Transaction must have at least one item")
	}

	customer, err := s.customerRepo.GetByCode(ctx, input.CustomerCode)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	details := make([]entity.TransactionDetail, 0, len(input.Items))
	total := decimal.Zero
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		product, err := s.productRepo.GetByCode(ctx, item.ProductCode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductCode))
		}

		detail := entity.TransactionDetail{
			ProductCode: product.Code,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		}
		details = append(details, detail)
		total = total.Add(detail.LineTotal())
	}

	if input.Discount != nil {
		total = total.Sub(*input.Discount)
	}
	if input.Tax != nil {
		total = total.Add(*input.Tax)
	}
	total = total.Add(input.ShippingFee)
	if total.IsNegative() {
		return nil, apperror.NewBadRequestError("Transaction total must not be negative")
	}

	adjusted, err := s.reserveStock(ctx, details)
	if err != nil {
		s.releaseStock(ctx, adjusted)
		return nil, err
	}

	transaction := &entity.Transaction{
		UserID:       input.UserID,
		CustomerCode: customer.Code,
		Date:         input.Date,
		Total:        total,
		Status:       enum.TransactionStatusPending,
		Notes:        input.Notes,
		Discount:     input.Discount,
		Tax:          input.Tax,
		ShippingFee:  input.ShippingFee,
	}

	for attempt := 0; attempt < sequenceAttempts; attempt++ {
		seq, err := s.transactionRepo.NextSequence(ctx, input.Date.Year(), input.Date.Month())
		if err != nil {
			s.releaseStock(ctx, details)
			return nil, err
		}
		number, err := identifier.InvoiceNumber(input.Date.Year(), input.Date.Month(), seq, customer.Code)
		if err != nil {
			s.releaseStock(ctx, details)
			var overflow *identifier.ErrSequenceOverflow
			if errors.As(err, &overflow) {
				return nil, apperror.NewAppError(http.StatusConflict, "Invoice number space exhausted for this month")
			}
			return nil, err
		}

		transaction.Number = number
		err = s.transactionRepo.Create(ctx, transaction, details)
		if err == nil {
			return s.transactionRepo.GetWithDetails(ctx, transaction.Number)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.releaseStock(ctx, details)
			return nil, err
		}
	}

	s.releaseStock(ctx, details)
	return nil, apperror.NewConflictError("Could not allocate an invoice number, try again")
}

// reserveStock decrements stock for each line. On failure it returns the
// lines already decremented so the caller can put them back.
func (s *TransactionService) reserveStock(ctx context.Context, details []entity.TransactionDetail) ([]entity.TransactionDetail, error) {
	var adjusted []entity.TransactionDetail
	for _, d := range details {
		if err := s.productRepo.AdjustStock(ctx, d.ProductCode, -d.Quantity); err != nil {
			if errors.Is(err, infraRepo.ErrInsufficientStock) {
				return adjusted, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for product %s", d.ProductCode))
			}
			return adjusted, err
		}
		adjusted = append(adjusted, d)
	}
	return adjusted, nil
}

func (s *TransactionService) releaseStock(ctx context.Context, details []entity.TransactionDetail) {
	for _, d := range details {
		// Best effort: a failed restore leaves stock short, never negative
		_ = s.productRepo.AdjustStock(ctx, d.ProductCode, d.Quantity)
	}
}

// GetTransaction retrieves a transaction with details and payments
func (s *TransactionService) GetTransaction(ctx context.Context, number string) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetWithDetails(ctx, number)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// UpdateStatus moves a pending transaction to completed or cancelled.
// Cancelling returns the reserved stock to the shelf.
func (s *TransactionService) UpdateStatus(ctx context.Context, number string, status enum.TransactionStatus) (*entity.Transaction, error) {
	if status != enum.TransactionStatusCompleted && status != enum.TransactionStatusCancelled {
		return nil, apperror.NewBadRequestError("Status must be completed or cancelled")
	}

	transaction, err := s.transactionRepo.GetWithDetails(ctx, number)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if transaction.Status != enum.TransactionStatusPending {
		return nil, apperror.NewConflictError("Only pending transactions can change status")
	}

	if err := s.transactionRepo.UpdateStatus(ctx, number, status); err != nil {
		return nil, err
	}

	if status == enum.TransactionStatusCancelled {
		s.releaseStock(ctx, transaction.Details)
	}

	return s.transactionRepo.GetWithDetails(ctx, number)
}

// DeleteTransaction deletes a transaction; details and payments go with it.
// Stock reserved by a still-pending transaction is returned.
func (s *TransactionService) DeleteTransaction(ctx context.Context, number string) error {
	transaction, err := s.transactionRepo.GetWithDetails(ctx, number)
	if err != nil {
		return err
	}
	if transaction == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	if err := s.transactionRepo.Delete(ctx, number); err != nil {
		return err
	}

	if transaction.Status == enum.TransactionStatusPending {
		s.releaseStock(ctx, transaction.Details)
	}
	return nil
}
