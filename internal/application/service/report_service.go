package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
)

// noValue marks an empty best-of slot in a report summary
const noValue = "N/A"

var oneHundred = decimal.NewFromInt(100)

// ReportService builds the four report views and the dashboard overview.
// Repositories return aggregate rows; all summary math happens here with
// decimal arithmetic. Every ratio substitutes zero for division by zero.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// SalesSummary totals the sales report
type SalesSummary struct {
	TotalUnits   int64           `json:"total_units"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	// Margin is profit over revenue as a percentage, zero when revenue is zero
	Margin       decimal.Decimal `json:"margin"`
	BestProduct  string          `json:"best_product"`
	BestCategory string          `json:"best_category"`
}

// SalesReport is the per-product and per-category sales view
type SalesReport struct {
	Start      time.Time                     `json:"start"`
	End        time.Time                     `json:"end"`
	Products   []repository.ProductSalesRow  `json:"products"`
	Categories []repository.CategorySalesRow `json:"categories"`
	Summary    SalesSummary                  `json:"summary"`
}

// BuildSalesReport aggregates completed transactions dated in [start, end]
func (s *ReportService) BuildSalesReport(ctx context.Context, start, end time.Time, categoryID *uint) (*SalesReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	products, err := s.reportRepo.SalesByProduct(ctx, start, end, categoryID)
	if err != nil {
		return nil, err
	}
	categories, err := s.reportRepo.SalesByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := SalesSummary{
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
		Margin:       decimal.Zero,
		BestProduct:  noValue,
		BestCategory: noValue,
	}
	for _, row := range products {
		summary.TotalUnits += row.UnitsSold
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		summary.TotalCost = summary.TotalCost.Add(row.Cost)
		summary.TotalProfit = summary.TotalProfit.Add(row.Profit)
	}
	if summary.TotalRevenue.IsPositive() {
		summary.Margin = summary.TotalProfit.Div(summary.TotalRevenue).Mul(oneHundred).Round(2)
	}
	// Rows arrive ordered by revenue descending
	if len(products) > 0 {
		summary.BestProduct = products[0].ProductName
	}
	if len(categories) > 0 {
		summary.BestCategory = categories[0].CategoryName
	}

	return &SalesReport{
		Start:      start,
		End:        end,
		Products:   products,
		Categories: categories,
		Summary:    summary,
	}, nil
}

// StockSummary totals the stock report
type StockSummary struct {
	TotalProducts int64 `json:"total_products"`
	TotalUnits    int64 `json:"total_units"`
	// InventoryValue is the sum of stock times cost over the listed products
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int64           `json:"low_stock_count"`
	OutOfStockCount int64          `json:"out_of_stock_count"`
}

// StockReport is the current inventory view
type StockReport struct {
	Bucket   repository.StockBucket `json:"bucket"`
	Products []entity.Product       `json:"products"`
	Summary  StockSummary           `json:"summary"`
}

// BuildStockReport snapshots current inventory, optionally narrowed to a
// category and a stock bucket
func (s *ReportService) BuildStockReport(ctx context.Context, categoryID *uint, bucket repository.StockBucket) (*StockReport, error) {
	if bucket == "" {
		bucket = repository.StockBucketAll
	}
	if !bucket.Valid() {
		return nil, apperror.NewBadRequestError("Stock filter must be all, low or out")
	}

	products, err := s.reportRepo.StockSnapshot(ctx, categoryID, bucket)
	if err != nil {
		return nil, err
	}

	summary := StockSummary{
		TotalProducts:  int64(len(products)),
		InventoryValue: decimal.Zero,
	}
	for i := range products {
		p := &products[i]
		summary.TotalUnits += int64(p.Stock)
		summary.InventoryValue = summary.InventoryValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.LowStock() {
			summary.LowStockCount++
		}
		if p.OutOfStock() {
			summary.OutOfStockCount++
		}
	}

	return &StockReport{Bucket: bucket, Products: products, Summary: summary}, nil
}

// CustomerSummary totals the customer report
type CustomerSummary struct {
	CustomerCount     int64           `json:"customer_count"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	AverageSpent      decimal.Decimal `json:"average_spent"`
}

// CustomerReport is the per-customer activity view
type CustomerReport struct {
	Customers []repository.CustomerActivityRow `json:"customers"`
	Summary   CustomerSummary                  `json:"summary"`
}

// BuildCustomerReport aggregates activity per customer. A date range limits
// which customers appear, not what is counted: listed customers keep their
// whole history in the totals.
func (s *ReportService) BuildCustomerReport(ctx context.Context, start, end *time.Time) (*CustomerReport, error) {
	if start != nil && end != nil {
		if err := validateRange(*start, *end); err != nil {
			return nil, err
		}
	}
	if (start == nil) != (end == nil) {
		return nil, apperror.NewBadRequestError("Start and end date must be given together")
	}

	customers, err := s.reportRepo.CustomerActivity(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := CustomerSummary{
		CustomerCount: int64(len(customers)),
		TotalSpent:    decimal.Zero,
		AverageSpent:  decimal.Zero,
	}
	for _, row := range customers {
		summary.TotalTransactions += row.TransactionCount
		summary.TotalSpent = summary.TotalSpent.Add(row.TotalSpent)
	}
	if summary.CustomerCount > 0 {
		summary.AverageSpent = summary.TotalSpent.Div(decimal.NewFromInt(summary.CustomerCount)).Round(2)
	}

	return &CustomerReport{Customers: customers, Summary: summary}, nil
}

// TransactionSummary totals the transaction report
type TransactionSummary struct {
	Count        int64            `json:"count"`
	Total        decimal.Decimal  `json:"total"`
	Average      decimal.Decimal  `json:"average"`
	StatusCounts map[string]int64 `json:"status_counts"`
	MaxTotal     decimal.Decimal  `json:"max_total"`
	// MinTotal is the smallest non-zero transaction total, zero when none
	MinTotal      decimal.Decimal `json:"min_total"`
	BusiestHour   string          `json:"busiest_hour"`
	PopularMethod string          `json:"popular_method"`
}

// TransactionReport is the transaction listing with its breakdowns
type TransactionReport struct {
	Transactions []entity.Transaction          `json:"transactions"`
	ByMethod     []repository.PaymentMethodRow `json:"by_method"`
	ByHour       []repository.HourlySalesRow   `json:"by_hour"`
	ByCashier    []repository.CashierSalesRow  `json:"by_cashier"`
	Summary      TransactionSummary            `json:"summary"`
}

// BuildTransactionReport lists transactions in range with payment method,
// hourly and cashier breakdowns
func (s *ReportService) BuildTransactionReport(ctx context.Context, filter *repository.TransactionReportFilter) (*TransactionReport, error) {
	if err := validateRange(filter.Start, filter.End); err != nil {
		return nil, err
	}

	transactions, err := s.reportRepo.TransactionsInRange(ctx, filter)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.reportRepo.PaymentMethodBreakdown(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	byHour, err := s.reportRepo.HourlySales(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}
	byCashier, err := s.reportRepo.CashierSales(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}

	summary := TransactionSummary{
		Count: int64(len(transactions)),
		Total: decimal.Zero,
		Average: decimal.Zero,
		StatusCounts: map[string]int64{
			enum.TransactionStatusPending.String():   0,
			enum.TransactionStatusCompleted.String(): 0,
			enum.TransactionStatusCancelled.String(): 0,
		},
		MaxTotal:      decimal.Zero,
		MinTotal:      decimal.Zero,
		BusiestHour:   noValue,
		PopularMethod: noValue,
	}

	for i := range transactions {
		t := &transactions[i]
		summary.Total = summary.Total.Add(t.Total)
		summary.StatusCounts[t.Status.String()]++
		if t.Total.GreaterThan(summary.MaxTotal) {
			summary.MaxTotal = t.Total
		}
		if t.Total.IsPositive() && (summary.MinTotal.IsZero() || t.Total.LessThan(summary.MinTotal)) {
			summary.MinTotal = t.Total
		}
	}
	if summary.Count > 0 {
		summary.Average = summary.Total.Div(decimal.NewFromInt(summary.Count)).Round(2)
	}

	if len(byHour) > 0 {
		busiest := byHour[0]
		for _, row := range byHour[1:] {
			if row.TransactionCount > busiest.TransactionCount {
				busiest = row
			}
		}
		summary.BusiestHour = time.Date(0, 1, 1, busiest.Hour, 0, 0, 0, time.UTC).Format("15:00")
	}
	// Breakdown arrives ordered by total descending
	if len(byMethod) > 0 {
		summary.PopularMethod = byMethod[0].Method.String()
	}

	return &TransactionReport{
		Transactions: transactions,
		ByMethod:     byMethod,
		ByHour:       byHour,
		ByCashier:    byCashier,
		Summary:      summary,
	}, nil
}

// Overview returns the dashboard counters
func (s *ReportService) Overview(ctx context.Context) (*repository.OverviewStats, error) {
	return s.reportRepo.Overview(ctx, time.Now())
}

func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return apperror.NewBadRequestError("End date must not be before start date")
	}
	return nil
}
