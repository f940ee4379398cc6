package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/pkg/apperror"
)

func setupPaymentService() (*service.PaymentService, *fakePaymentRepo, *fakeTransactionRepo) {
	paymentRepo := newFakePaymentRepo()
	transactionRepo := newFakeTransactionRepo()

	transactionRepo.transactions["INV-2025-08-0000001-P000001"] = &entity.Transaction{
		Number:       "INV-2025-08-0000001-P000001",
		UserID:       uuid.New(),
		CustomerCode: "P000001",
		Date:         time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
		Total:        dec("27.50"),
		Status:       enum.TransactionStatusPending,
	}
	transactionRepo.transactions["INV-2025-08-0000002-P000001"] = &entity.Transaction{
		Number: "INV-2025-08-0000002-P000001",
		Status: enum.TransactionStatusCancelled,
	}

	svc := service.NewPaymentService(paymentRepo, transactionRepo)
	return svc, paymentRepo, transactionRepo
}

func TestCreatePayment(t *testing.T) {
	svc, _, _ := setupPaymentService()

	payment, err := svc.CreatePayment(context.Background(), &service.CreatePaymentInput{
		TransactionNumber: "INV-2025-08-0000001-P000001",
		Method:            enum.PaymentMethodCash,
		Amount:            dec("27.50"),
		Date:              time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	if payment.Number != "PAY-20250818-0000001" {
		t.Errorf("number = %q, want PAY-20250818-0000001", payment.Number)
	}
	if payment.Method != enum.PaymentMethodCash {
		t.Errorf("method = %v, want cash", payment.Method)
	}
}

func TestCreatePaymentRetriesOnDuplicateNumber(t *testing.T) {
	svc, paymentRepo, _ := setupPaymentService()
	paymentRepo.failCreates = 1

	payment, err := svc.CreatePayment(context.Background(), &service.CreatePaymentInput{
		TransactionNumber: "INV-2025-08-0000001-P000001",
		Method:            enum.PaymentMethodNonCash,
		Amount:            dec("10.00"),
		Date:              time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if paymentRepo.createCalls != 2 {
		t.Errorf("create calls = %d, want 2", paymentRepo.createCalls)
	}
	if payment.Number != "PAY-20250818-0000002" {
		t.Errorf("number = %q, want sequence 2 after retry", payment.Number)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _, _ := setupPaymentService()
	date := time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    *service.CreatePaymentInput
		wantCode int
	}{
		{
			name: "unknown transaction",
			input: &service.CreatePaymentInput{
				TransactionNumber: "INV-2025-08-0009999-P000001",
				Method:            enum.PaymentMethodCash,
				Amount:            dec("5.00"),
				Date:              date,
			},
			wantCode: 404,
		},
		{
			name: "cancelled transaction",
			input: &service.CreatePaymentInput{
				TransactionNumber: "INV-2025-08-0000002-P000001",
				Method:            enum.PaymentMethodCash,
				Amount:            dec("5.00"),
				Date:              date,
			},
			wantCode: 400,
		},
		{
			name: "zero amount",
			input: &service.CreatePaymentInput{
				TransactionNumber: "INV-2025-08-0000001-P000001",
				Method:            enum.PaymentMethodCash,
				Amount:            decimal.Zero,
				Date:              date,
			},
			wantCode: 400,
		},
		{
			name: "negative amount",
			input: &service.CreatePaymentInput{
				TransactionNumber: "INV-2025-08-0000001-P000001",
				Method:            enum.PaymentMethodCash,
				Amount:            dec("-1.00"),
				Date:              date,
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePayment(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperror.GetAppError(err).Code; got != tt.wantCode {
				t.Errorf("code = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestMultiplePaymentsPerTransaction(t *testing.T) {
	svc, _, _ := setupPaymentService()
	date := time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC)

	for _, amount := range []string{"10.00", "17.50"} {
		_, err := svc.CreatePayment(context.Background(), &service.CreatePaymentInput{
			TransactionNumber: "INV-2025-08-0000001-P000001",
			Method:            enum.PaymentMethodCash,
			Amount:            dec(amount),
			Date:              date,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	payments, err := svc.ListPaymentsByTransaction(context.Background(), "INV-2025-08-0000001-P000001")
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 2 {
		t.Errorf("payments = %d, want 2", len(payments))
	}
}
