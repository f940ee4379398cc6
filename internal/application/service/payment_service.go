package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/identifier"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// PaymentService handles payments against transactions
type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	transactionRepo repository.TransactionRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, transactionRepo repository.TransactionRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		transactionRepo: transactionRepo,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	TransactionNumber string
	Method            enum.PaymentMethod
	Amount            decimal.Decimal
	Note              *string
	Date              time.Time
}

// CreatePayment records a payment against a transaction. A transaction may
// carry several payments; cancelled transactions take none.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	transaction, err := s.transactionRepo.GetByNumber(ctx, input.TransactionNumber)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if transaction.Status == enum.TransactionStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot record a payment on a cancelled transaction")
	}

	payment := &entity.Payment{
		TransactionNumber: transaction.Number,
		Method:            input.Method,
		Amount:            input.Amount,
		Note:              input.Note,
		Date:              input.Date,
	}

	for attempt := 0; attempt < sequenceAttempts; attempt++ {
		seq, err := s.paymentRepo.NextSequence(ctx, input.Date)
		if err != nil {
			return nil, err
		}
		number, err := identifier.PaymentNumber(input.Date, seq)
		if err != nil {
			var overflow *identifier.ErrSequenceOverflow
			if errors.As(err, &overflow) {
				return nil, apperror.NewAppError(http.StatusConflict, "Payment number space exhausted for this day")
			}
			return nil, err
		}

		payment.Number = number
		err = s.paymentRepo.Create(ctx, payment)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperror.NewConflictError("Could not allocate a payment number, try again")
}

// GetPayment retrieves a payment by number
func (s *PaymentService) GetPayment(ctx context.Context, number string) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPaymentsByTransaction lists the payments recorded against a transaction
func (s *PaymentService) ListPaymentsByTransaction(ctx context.Context, transactionNumber string) ([]entity.Payment, error) {
	transaction, err := s.transactionRepo.GetByNumber(ctx, transactionNumber)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return s.paymentRepo.ListByTransaction(ctx, transactionNumber)
}

// ListPayments lists all payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// DeletePayment removes a payment record
func (s *PaymentService) DeletePayment(ctx context.Context, number string) error {
	payment, err := s.paymentRepo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}
	return s.paymentRepo.Delete(ctx, number)
}
