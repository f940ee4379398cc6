package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
)

// fakeReportRepo returns canned aggregate rows so the summary math in the
// service can be checked in isolation.
type fakeReportRepo struct {
	productRows  []repository.ProductSalesRow
	categoryRows []repository.CategorySalesRow
	stock        []entity.Product
	customers    []repository.CustomerActivityRow
	// transaction dates per customer code, for the activity existence filter
	customerDates map[string][]time.Time
	transactions  []entity.Transaction
	byMethod      []repository.PaymentMethodRow
	byHour        []repository.HourlySalesRow
	byCashier     []repository.CashierSalesRow
}

func (f *fakeReportRepo) SalesByProduct(_ context.Context, _, _ time.Time, _ *uint) ([]repository.ProductSalesRow, error) {
	return f.productRows, nil
}

func (f *fakeReportRepo) SalesByCategory(_ context.Context, _, _ time.Time) ([]repository.CategorySalesRow, error) {
	return f.categoryRows, nil
}

func (f *fakeReportRepo) StockSnapshot(_ context.Context, _ *uint, bucket repository.StockBucket) ([]entity.Product, error) {
	if bucket == repository.StockBucketAll {
		return f.stock, nil
	}
	var out []entity.Product
	for _, p := range f.stock {
		if (bucket == repository.StockBucketLow && p.LowStock()) ||
			(bucket == repository.StockBucketOut && p.OutOfStock()) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) CustomerActivity(_ context.Context, start, end *time.Time) ([]repository.CustomerActivityRow, error) {
	if start == nil || end == nil {
		return f.customers, nil
	}
	// A range decides which customers appear at all; the rows themselves
	// keep whole-history counts and sums.
	var out []repository.CustomerActivityRow
	for _, row := range f.customers {
		for _, d := range f.customerDates[row.CustomerCode] {
			if !d.Before(*start) && !d.After(*end) {
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReportRepo) TransactionsInRange(_ context.Context, _ *repository.TransactionReportFilter) ([]entity.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeReportRepo) PaymentMethodBreakdown(_ context.Context, _, _ time.Time) ([]repository.PaymentMethodRow, error) {
	return f.byMethod, nil
}

func (f *fakeReportRepo) HourlySales(_ context.Context, _, _ time.Time) ([]repository.HourlySalesRow, error) {
	return f.byHour, nil
}

func (f *fakeReportRepo) CashierSales(_ context.Context, _, _ time.Time) ([]repository.CashierSalesRow, error) {
	return f.byCashier, nil
}

func (f *fakeReportRepo) Overview(_ context.Context, _ time.Time) (*repository.OverviewStats, error) {
	return &repository.OverviewStats{}, nil
}

var (
	reportStart = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	reportEnd   = time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
)

func TestBuildSalesReportSummary(t *testing.T) {
	repo := &fakeReportRepo{
		productRows: []repository.ProductSalesRow{
			{ProductName: "Paracetamol", UnitsSold: 10, Revenue: dec("105.00"), Cost: dec("70.00"), Profit: dec("35.00")},
			{ProductName: "Vitamin C", UnitsSold: 4, Revenue: dec("20.00"), Cost: dec("12.00"), Profit: dec("8.00")},
		},
		categoryRows: []repository.CategorySalesRow{
			{CategoryName: "Analgesics", Revenue: dec("105.00")},
			{CategoryName: "Supplements", Revenue: dec("20.00")},
		},
	}
	svc := service.NewReportService(repo)

	report, err := svc.BuildSalesReport(context.Background(), reportStart, reportEnd, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.TotalUnits != 14 {
		t.Errorf("total units = %d, want 14", s.TotalUnits)
	}
	if !s.TotalRevenue.Equal(dec("125.00")) {
		t.Errorf("revenue = %s, want 125.00", s.TotalRevenue)
	}
	if !s.TotalProfit.Equal(dec("43.00")) {
		t.Errorf("profit = %s, want 43.00", s.TotalProfit)
	}
	// 43 / 125 * 100
	if !s.Margin.Equal(dec("34.40")) {
		t.Errorf("margin = %s, want 34.40", s.Margin)
	}
	if s.BestProduct != "Paracetamol" {
		t.Errorf("best product = %q, want Paracetamol", s.BestProduct)
	}
	if s.BestCategory != "Analgesics" {
		t.Errorf("best category = %q, want Analgesics", s.BestCategory)
	}
}

func TestBuildSalesReportEmpty(t *testing.T) {
	svc := service.NewReportService(&fakeReportRepo{})

	report, err := svc.BuildSalesReport(context.Background(), reportStart, reportEnd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Summary.Margin.IsZero() {
		t.Errorf("margin = %s, want 0 with no revenue", report.Summary.Margin)
	}
	if report.Summary.BestProduct != "N/A" || report.Summary.BestCategory != "N/A" {
		t.Errorf("best = %q/%q, want N/A", report.Summary.BestProduct, report.Summary.BestCategory)
	}
}

func TestBuildSalesReportRejectsReversedRange(t *testing.T) {
	svc := service.NewReportService(&fakeReportRepo{})

	_, err := svc.BuildSalesReport(context.Background(), reportEnd, reportStart, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
}

func TestBuildStockReport(t *testing.T) {
	repo := &fakeReportRepo{
		stock: []entity.Product{
			{Name: "Paracetamol", Cost: dec("7.00"), Stock: 10, StockAlert: 5},
			{Name: "Vitamin C", Cost: dec("3.00"), Stock: 2, StockAlert: 5},
			{Name: "Bandage", Cost: dec("1.50"), Stock: 0, StockAlert: 5},
		},
	}
	svc := service.NewReportService(repo)

	report, err := svc.BuildStockReport(context.Background(), nil, "")
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if report.Bucket != repository.StockBucketAll {
		t.Errorf("bucket = %q, want all by default", report.Bucket)
	}
	if s.TotalProducts != 3 || s.TotalUnits != 12 {
		t.Errorf("products/units = %d/%d, want 3/12", s.TotalProducts, s.TotalUnits)
	}
	// 10*7.00 + 2*3.00 + 0*1.50
	if !s.InventoryValue.Equal(dec("76.00")) {
		t.Errorf("inventory value = %s, want 76.00", s.InventoryValue)
	}
	if s.LowStockCount != 1 || s.OutOfStockCount != 1 {
		t.Errorf("low/out = %d/%d, want 1/1", s.LowStockCount, s.OutOfStockCount)
	}
}

func TestBuildStockReportBuckets(t *testing.T) {
	repo := &fakeReportRepo{
		stock: []entity.Product{
			{Name: "Vitamin C", Cost: dec("3.00"), Stock: 2, StockAlert: 5},
			{Name: "Bandage", Cost: dec("1.50"), Stock: 0, StockAlert: 5},
		},
	}
	svc := service.NewReportService(repo)

	low, err := svc.BuildStockReport(context.Background(), nil, repository.StockBucketLow)
	if err != nil {
		t.Fatal(err)
	}
	if len(low.Products) != 1 || low.Products[0].Name != "Vitamin C" {
		t.Errorf("low bucket = %v, want just Vitamin C", low.Products)
	}

	_, err = svc.BuildStockReport(context.Background(), nil, repository.StockBucket("empty"))
	if err == nil {
		t.Fatal("expected error for unknown bucket")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
}

func TestBuildCustomerReport(t *testing.T) {
	repo := &fakeReportRepo{
		customers: []repository.CustomerActivityRow{
			{CustomerCode: "P000001", CustomerName: "Budi", TransactionCount: 3, TotalSpent: dec("90.00")},
			{CustomerCode: "P000002", CustomerName: "Siti", TransactionCount: 1, TotalSpent: dec("10.00")},
		},
	}
	svc := service.NewReportService(repo)

	report, err := svc.BuildCustomerReport(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.CustomerCount != 2 || s.TotalTransactions != 4 {
		t.Errorf("customers/transactions = %d/%d, want 2/4", s.CustomerCount, s.TotalTransactions)
	}
	if !s.TotalSpent.Equal(dec("100.00")) {
		t.Errorf("total spent = %s, want 100.00", s.TotalSpent)
	}
	if !s.AverageSpent.Equal(dec("50.00")) {
		t.Errorf("average spent = %s, want 50.00", s.AverageSpent)
	}
}

func TestBuildCustomerReportDateScoping(t *testing.T) {
	repo := &fakeReportRepo{
		customers: []repository.CustomerActivityRow{
			{CustomerCode: "P000001", CustomerName: "Budi", TransactionCount: 2, TotalSpent: dec("90.00")},
			{CustomerCode: "P000002", CustomerName: "Siti", TransactionCount: 1, TotalSpent: dec("10.00")},
			{CustomerCode: "P000003", CustomerName: "Agus", TransactionCount: 0, TotalSpent: dec("0.00")},
		},
		customerDates: map[string][]time.Time{
			// One purchase inside August, one before it
			"P000001": {
				time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.August, 12, 0, 0, 0, 0, time.UTC),
			},
			// Purchases only before the range
			"P000002": {time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := service.NewReportService(repo)

	start, end := reportStart, reportEnd
	ranged, err := svc.BuildCustomerReport(context.Background(), &start, &end)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranged.Customers) != 1 || ranged.Customers[0].CustomerCode != "P000001" {
		t.Fatalf("ranged customers = %v, want only P000001", ranged.Customers)
	}
	// Listed customers keep their whole history in the totals
	if ranged.Customers[0].TransactionCount != 2 || !ranged.Summary.TotalSpent.Equal(dec("90.00")) {
		t.Errorf("history = %d/%s, want 2/90.00", ranged.Customers[0].TransactionCount, ranged.Summary.TotalSpent)
	}

	all, err := svc.BuildCustomerReport(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Customers) != 3 {
		t.Fatalf("unranged customers = %d, want all 3", len(all.Customers))
	}
	if all.Customers[2].TransactionCount != 0 {
		t.Errorf("customer with no purchases should appear with zero totals")
	}
}

func TestBuildCustomerReportRejectsHalfRange(t *testing.T) {
	svc := service.NewReportService(&fakeReportRepo{})

	start := reportStart
	_, err := svc.BuildCustomerReport(context.Background(), &start, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
}

func TestBuildTransactionReportSummary(t *testing.T) {
	repo := &fakeReportRepo{
		transactions: []entity.Transaction{
			{Number: "INV-2025-08-0000001-P000001", Total: dec("27.50"), Status: enum.TransactionStatusCompleted},
			{Number: "INV-2025-08-0000002-P000001", Total: dec("10.00"), Status: enum.TransactionStatusCompleted},
			{Number: "INV-2025-08-0000003-P000002", Total: dec("0.00"), Status: enum.TransactionStatusCancelled},
			{Number: "INV-2025-08-0000004-P000002", Total: dec("62.50"), Status: enum.TransactionStatusPending},
		},
		byMethod: []repository.PaymentMethodRow{
			{Method: enum.PaymentMethodCash, TransactionCount: 3, Total: dec("80.00")},
			{Method: enum.PaymentMethodNonCash, TransactionCount: 1, Total: dec("20.00")},
		},
		byHour: []repository.HourlySalesRow{
			{Hour: 9, TransactionCount: 1, Total: dec("10.00")},
			{Hour: 15, TransactionCount: 3, Total: dec("90.00")},
		},
		byCashier: []repository.CashierSalesRow{
			{UserID: uuid.New(), UserName: "Siti", TransactionCount: 4, Total: dec("100.00")},
		},
	}
	svc := service.NewReportService(repo)

	report, err := svc.BuildTransactionReport(context.Background(), &repository.TransactionReportFilter{
		Start: reportStart,
		End:   reportEnd,
	})
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.Count != 4 {
		t.Errorf("count = %d, want 4", s.Count)
	}
	if !s.Total.Equal(dec("100.00")) {
		t.Errorf("total = %s, want 100.00", s.Total)
	}
	if !s.Average.Equal(dec("25.00")) {
		t.Errorf("average = %s, want 25.00", s.Average)
	}
	if s.StatusCounts["completed"] != 2 || s.StatusCounts["pending"] != 1 || s.StatusCounts["cancelled"] != 1 {
		t.Errorf("status counts = %v", s.StatusCounts)
	}
	if !s.MaxTotal.Equal(dec("62.50")) {
		t.Errorf("max = %s, want 62.50", s.MaxTotal)
	}
	// Smallest non-zero total, the cancelled zero is skipped
	if !s.MinTotal.Equal(dec("10.00")) {
		t.Errorf("min = %s, want 10.00", s.MinTotal)
	}
	if s.BusiestHour != "15:00" {
		t.Errorf("busiest hour = %q, want 15:00", s.BusiestHour)
	}
	if s.PopularMethod != "cash" {
		t.Errorf("popular method = %q, want cash", s.PopularMethod)
	}
}

func TestBuildTransactionReportEmpty(t *testing.T) {
	svc := service.NewReportService(&fakeReportRepo{})

	report, err := svc.BuildTransactionReport(context.Background(), &repository.TransactionReportFilter{
		Start: reportStart,
		End:   reportEnd,
	})
	if err != nil {
		t.Fatal(err)
	}

	s := report.Summary
	if s.BusiestHour != "N/A" || s.PopularMethod != "N/A" {
		t.Errorf("busiest/popular = %q/%q, want N/A", s.BusiestHour, s.PopularMethod)
	}
	if len(s.StatusCounts) != 3 {
		t.Errorf("status counts preseeded = %v, want all three statuses", s.StatusCounts)
	}
	if !s.Average.IsZero() || !s.MinTotal.IsZero() {
		t.Errorf("average/min = %s/%s, want 0", s.Average, s.MinTotal)
	}
}
