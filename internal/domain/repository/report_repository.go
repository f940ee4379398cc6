package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
)

// StockBucket selects a stock-status slice of the catalog
type StockBucket string

const (
	StockBucketAll StockBucket = "all"
	// StockBucketLow is 0 < stock <= stock_alert
	StockBucketLow StockBucket = "low"
	// StockBucketOut is stock == 0
	StockBucketOut StockBucket = "out"
)

// Valid reports whether the bucket is one of the known buckets
func (b StockBucket) Valid() bool {
	switch b {
	case StockBucketAll, StockBucketLow, StockBucketOut:
		return true
	}
	return false
}

// ProductSalesRow is a per-product sales aggregate over completed transactions
type ProductSalesRow struct {
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
}

// CategorySalesRow is a per-category sales aggregate over completed transactions
type CategorySalesRow struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ProductCount int64           `json:"product_count"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// CustomerActivityRow is a per-customer transaction aggregate
type CustomerActivityRow struct {
	CustomerCode     string          `json:"customer_code"`
	CustomerName     string          `json:"customer_name"`
	TransactionCount int64           `json:"transaction_count"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
}

// PaymentMethodRow is a per-method transaction aggregate
type PaymentMethodRow struct {
	Method           enum.PaymentMethod `json:"method"`
	TransactionCount int64              `json:"transaction_count"`
	Total            decimal.Decimal    `json:"total"`
	Average          decimal.Decimal    `json:"average"`
}

// HourlySalesRow is a per-hour aggregate over completed transactions
type HourlySalesRow struct {
	Hour             int             `json:"hour"`
	TransactionCount int64           `json:"transaction_count"`
	Total            decimal.Decimal `json:"total"`
}

// CashierSalesRow is a per-cashier aggregate over completed transactions
type CashierSalesRow struct {
	UserID           uuid.UUID       `json:"user_id"`
	UserName         string          `json:"user_name"`
	TransactionCount int64           `json:"transaction_count"`
	Total            decimal.Decimal `json:"total"`
	Average          decimal.Decimal `json:"average"`
}

// OverviewStats is the dashboard snapshot
type OverviewStats struct {
	TransactionsToday     int64           `json:"transactions_today"`
	SalesToday            decimal.Decimal `json:"sales_today"`
	TransactionsThisMonth int64           `json:"transactions_this_month"`
	SalesThisMonth        decimal.Decimal `json:"sales_this_month"`
	ProductCount          int64           `json:"product_count"`
	CustomerCount         int64           `json:"customer_count"`
	UserCount             int64           `json:"user_count"`
	LowStockProducts      int64           `json:"low_stock_products"`
}

// TransactionReportFilter selects transactions for the transaction report
type TransactionReportFilter struct {
	Start        time.Time
	End          time.Time
	Status       *enum.TransactionStatus
	CustomerCode string
	Method       *enum.PaymentMethod
}

// ReportRepository defines the aggregate queries behind the four report
// views. Each method is a fixed join-group-aggregate pipeline; summary math
// on top of these rows lives in the report service.
type ReportRepository interface {
	// SalesByProduct aggregates line items of completed transactions dated in
	// [start, end], grouped by product, ordered by revenue descending.
	SalesByProduct(ctx context.Context, start, end time.Time, categoryID *uint) ([]ProductSalesRow, error)

	// SalesByCategory is the same aggregation rolled up by category.
	SalesByCategory(ctx context.Context, start, end time.Time) ([]CategorySalesRow, error)

	// StockSnapshot returns the current product slice for the stock report,
	// not date-filtered, ordered by name.
	StockSnapshot(ctx context.Context, categoryID *uint, bucket StockBucket) ([]entity.Product, error)

	// CustomerActivity aggregates transactions per customer. With a range,
	// only customers having at least one transaction dated inside it are
	// returned; without one, every customer appears, zero counts included.
	CustomerActivity(ctx context.Context, start, end *time.Time) ([]CustomerActivityRow, error)

	// TransactionsInRange returns transactions matching the filter, newest first.
	TransactionsInRange(ctx context.Context, filter *TransactionReportFilter) ([]entity.Transaction, error)

	// PaymentMethodBreakdown aggregates transactions per payment method over
	// the range, ordered by total descending.
	PaymentMethodBreakdown(ctx context.Context, start, end time.Time) ([]PaymentMethodRow, error)

	// HourlySales aggregates completed transactions per hour of day (0-23).
	HourlySales(ctx context.Context, start, end time.Time) ([]HourlySalesRow, error)

	// CashierSales aggregates completed transactions per user, ordered by
	// total descending.
	CashierSales(ctx context.Context, start, end time.Time) ([]CashierSalesRow, error)

	// Overview returns the dashboard counters relative to now.
	Overview(ctx context.Context, now time.Time) (*OverviewStats, error)
}
