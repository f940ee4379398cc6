package repository

import (
	"context"
	"time"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	domainRepo "github.com/tokosakti/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesByProduct(ctx context.Context, start, end time.Time, categoryID *uint) ([]domainRepo.ProductSalesRow, error) {
	var rows []domainRepo.ProductSalesRow

	query := `
		SELECT
			p.code AS product_code,
			p.name AS product_name,
			c.name AS category_name,
			p.price AS price,
			SUM(td.quantity) AS units_sold,
			SUM(td.quantity * td.unit_price) AS revenue,
			SUM(td.quantity * p.cost) AS cost,
			SUM(td.quantity * td.unit_price) - SUM(td.quantity * p.cost) AS profit
		FROM transaction_details td
		JOIN transactions t ON t.number = td.transaction_number
		JOIN products p ON p.code = td.product_code
		JOIN categories c ON c.id = p.category_id
		WHERE t.status = ? AND t.date BETWEEN ? AND ?`
	args := []interface{}{enum.TransactionStatusCompleted, start, end}

	if categoryID != nil {
		query += ` AND p.category_id = ?`
		args = append(args, *categoryID)
	}

	query += `
		GROUP BY p.code, p.name, c.name, p.price
		ORDER BY revenue DESC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) SalesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.CategorySalesRow, error) {
	var rows []domainRepo.CategorySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS category_id,
			c.name AS category_name,
			COUNT(DISTINCT p.code) AS product_count,
			SUM(td.quantity) AS units_sold,
			SUM(td.quantity * td.unit_price) AS revenue,
			SUM(td.quantity * td.unit_price) - SUM(td.quantity * p.cost) AS profit
		FROM transaction_details td
		JOIN transactions t ON t.number = td.transaction_number
		JOIN products p ON p.code = td.product_code
		JOIN categories c ON c.id = p.category_id
		WHERE t.status = ? AND t.date BETWEEN ? AND ?
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
	`, enum.TransactionStatusCompleted, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) StockSnapshot(ctx context.Context, categoryID *uint, bucket domainRepo.StockBucket) ([]entity.Product, error) {
	var products []entity.Product

	query := r.db.WithContext(ctx).Preload("Category")

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	switch bucket {
	case domainRepo.StockBucketLow:
		query = query.Where("stock > 0 AND stock <= stock_alert")
	case domainRepo.StockBucketOut:
		query = query.Where("stock = 0")
	}

	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *reportRepository) CustomerActivity(ctx context.Context, start, end *time.Time) ([]domainRepo.CustomerActivityRow, error) {
	var rows []domainRepo.CustomerActivityRow

	// Counts and sums cover the customer's whole history. A date range only
	// decides which customers appear at all.
	query := `
		SELECT
			c.code AS customer_code,
			c.name AS customer_name,
			COUNT(t.number) AS transaction_count,
			COALESCE(SUM(t.total), 0) AS total_spent
		FROM customers c
		LEFT JOIN transactions t ON t.customer_code = c.code`
	var args []interface{}

	if start != nil && end != nil {
		query += `
		WHERE EXISTS (
			SELECT 1 FROM transactions tr
			WHERE tr.customer_code = c.code AND tr.date BETWEEN ? AND ?
		)`
		args = append(args, *start, *end)
	}

	query += `
		GROUP BY c.code, c.name
		ORDER BY total_spent DESC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) TransactionsInRange(ctx context.Context, filter *domainRepo.TransactionReportFilter) ([]entity.Transaction, error) {
	var transactions []entity.Transaction

	query := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", filter.Start, filter.End)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.CustomerCode != "" {
		query = query.Where("customer_code = ?", filter.CustomerCode)
	}

	if filter.Method != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM payments p WHERE p.transaction_number = transactions.number AND p.method = ?)",
			*filter.Method,
		)
	}

	err := query.
		Preload("Customer").
		Preload("Payments").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *reportRepository) PaymentMethodBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.PaymentMethodRow, error) {
	var rows []domainRepo.PaymentMethodRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.method AS method,
			COUNT(DISTINCT p.transaction_number) AS transaction_count,
			SUM(p.amount) AS total,
			SUM(p.amount) / COUNT(DISTINCT p.transaction_number) AS average
		FROM payments p
		WHERE p.date BETWEEN ? AND ?
		GROUP BY p.method
		ORDER BY total DESC
	`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) HourlySales(ctx context.Context, start, end time.Time) ([]domainRepo.HourlySalesRow, error) {
	var rows []domainRepo.HourlySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(HOUR FROM created_at)::int AS hour,
			COUNT(*) AS transaction_count,
			SUM(total) AS total
		FROM transactions
		WHERE status = ? AND date BETWEEN ? AND ?
		GROUP BY hour
		ORDER BY hour ASC
	`, enum.TransactionStatusCompleted, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CashierSales(ctx context.Context, start, end time.Time) ([]domainRepo.CashierSalesRow, error) {
	var rows []domainRepo.CashierSalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.name AS user_name,
			COUNT(t.number) AS transaction_count,
			SUM(t.total) AS total,
			SUM(t.total) / COUNT(t.number) AS average
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		WHERE t.status = ? AND t.date BETWEEN ? AND ?
		GROUP BY u.id, u.name
		ORDER BY total DESC
	`, enum.TransactionStatusCompleted, start, end).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) Overview(ctx context.Context, now time.Time) (*domainRepo.OverviewStats, error) {
	stats := &domainRepo.OverviewStats{}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE date = ?) AS transactions_today,
			COALESCE(SUM(total) FILTER (WHERE date = ? AND status = ?), 0) AS sales_today,
			COUNT(*) FILTER (WHERE date >= ?) AS transactions_this_month,
			COALESCE(SUM(total) FILTER (WHERE date >= ? AND status = ?), 0) AS sales_this_month
		FROM transactions
	`, today, today, enum.TransactionStatusCompleted,
		monthStart, monthStart, enum.TransactionStatusCompleted).Scan(stats).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&stats.CustomerCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&stats.UserCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("stock > 0 AND stock <= stock_alert").
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
