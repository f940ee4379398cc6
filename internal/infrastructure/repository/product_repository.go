package repository

import (
	"context"
	"errors"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	domainRepo "github.com/tokosakti/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by AdjustStock when a decrement would
// drive stock below zero
var ErrInsufficientStock = errors.New("insufficient stock")

var productSortColumns = map[string]bool{
	"code":       true,
	"name":       true,
	"price":      true,
	"cost":       true,
	"stock":      true,
	"created_at": true,
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "code = ?", code).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("stock > 0 AND stock <= stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(params.SortBy, "name", productSortColumns)
	sortOrder := "ASC"
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ForEachBatch(ctx context.Context, batchSize int, fn func(products []entity.Product) error) error {
	var products []entity.Product
	result := r.db.WithContext(ctx).Preload("Category").
		FindInBatches(&products, batchSize, func(tx *gorm.DB, batch int) error {
			return fn(products)
		})
	return result.Error
}

func (r *productRepository) NextSerial(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(LEFT(code, 12) AS BIGINT)), 0)
		FROM products
	`).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *productRepository) AdjustStock(ctx context.Context, code string, delta int) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("code = ? AND stock + ? >= 0", code, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
