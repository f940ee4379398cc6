package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/identifier"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	infraRepo "github.com/tokosakti/pos-api/internal/infrastructure/repository"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// In-memory fakes behind the domain repository interfaces. Each fake keeps
// just enough state for the service under test; sequence fakes can inject
// duplicate-key failures to exercise the retry loops.

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	nextSeq   int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer), nextSeq: 1}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if _, exists := f.customers[customer.Code]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.customers[customer.Code] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	return f.customers[code], nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	f.customers[customer.Code] = customer
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, code string) error {
	delete(f.customers, code)
	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepo) NextSequence(_ context.Context) (int64, error) {
	return f.nextSeq, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	serial   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product), serial: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if _, exists := f.products[product.Code]; exists {
		return gorm.ErrDuplicatedKey
	}
	clone := *product
	f.products[product.Code] = &clone
	return nil
}

func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := f.products[code]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	clone := *product
	f.products[product.Code] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, code string) error {
	delete(f.products, code)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ForEachBatch(_ context.Context, _ int, fn func(products []entity.Product) error) error {
	var all []entity.Product
	for _, p := range f.products {
		all = append(all, *p)
	}
	if len(all) == 0 {
		return nil
	}
	return fn(all)
}

func (f *fakeProductRepo) NextSerial(_ context.Context) (int64, error) {
	return f.serial, nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, code string, delta int) error {
	p, ok := f.products[code]
	if !ok || p.Stock+delta < 0 {
		return infraRepo.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (f *fakeProductRepo) stock(code string) int {
	return f.products[code].Stock
}

type fakeTransactionRepo struct {
	transactions map[string]*entity.Transaction
	details      map[string][]entity.TransactionDetail
	nextSeq      int64
	failCreates  int // inject this many duplicate-key failures
	createCalls  int
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[string]*entity.Transaction),
		details:      make(map[string][]entity.TransactionDetail),
		nextSeq:      1,
	}
}

func (f *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction, details []entity.TransactionDetail) error {
	f.createCalls++
	if f.failCreates > 0 {
		f.failCreates--
		f.nextSeq++
		return gorm.ErrDuplicatedKey
	}
	if _, exists := f.transactions[transaction.Number]; exists {
		return gorm.ErrDuplicatedKey
	}
	clone := *transaction
	f.transactions[transaction.Number] = &clone
	f.details[transaction.Number] = append([]entity.TransactionDetail(nil), details...)
	f.nextSeq++
	return nil
}

func (f *fakeTransactionRepo) GetByNumber(_ context.Context, number string) (*entity.Transaction, error) {
	t, ok := f.transactions[number]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTransactionRepo) GetWithDetails(_ context.Context, number string) (*entity.Transaction, error) {
	t, ok := f.transactions[number]
	if !ok {
		return nil, nil
	}
	clone := *t
	clone.Details = append([]entity.TransactionDetail(nil), f.details[number]...)
	return &clone, nil
}

func (f *fakeTransactionRepo) List(_ context.Context, _ *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, t := range f.transactions {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTransactionRepo) UpdateStatus(_ context.Context, number string, status enum.TransactionStatus) error {
	f.transactions[number].Status = status
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, number string) error {
	delete(f.transactions, number)
	delete(f.details, number)
	return nil
}

func (f *fakeTransactionRepo) NextSequence(_ context.Context, _ int, _ time.Month) (int64, error) {
	return f.nextSeq, nil
}

type fakePaymentRepo struct {
	payments    map[string]*entity.Payment
	nextSeq     int64
	failCreates int
	createCalls int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*entity.Payment), nextSeq: 1}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.createCalls++
	if f.failCreates > 0 {
		f.failCreates--
		f.nextSeq++
		return gorm.ErrDuplicatedKey
	}
	if _, exists := f.payments[payment.Number]; exists {
		return gorm.ErrDuplicatedKey
	}
	clone := *payment
	f.payments[payment.Number] = &clone
	f.nextSeq++
	return nil
}

func (f *fakePaymentRepo) GetByNumber(_ context.Context, number string) (*entity.Payment, error) {
	p, ok := f.payments[number]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePaymentRepo) ListByTransaction(_ context.Context, transactionNumber string) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		if p.TransactionNumber == transactionNumber {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, number string) error {
	delete(f.payments, number)
	return nil
}

func (f *fakePaymentRepo) NextSequence(_ context.Context, _ time.Time) (int64, error) {
	return f.nextSeq, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *repository.UserFilterParams) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if u, ok := f.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

// mustProductCode builds a valid EAN-13 code for fixtures
func mustProductCode(serial int64) string {
	code, err := identifier.ProductCode(serial)
	if err != nil {
		panic(err)
	}
	return code
}
