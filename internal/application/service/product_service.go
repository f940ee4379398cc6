package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/identifier"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// sequenceAttempts bounds the allocate-then-insert retry loop shared by every
// service that assigns sequential identifiers. Concurrent creates can both
// read the same MAX; the loser's insert hits the primary key and retries with
// a fresh sequence.
const sequenceAttempts = 3

const exportBatchSize = 500

// ProductService handles product operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Code           string // empty means auto-assign
	CategoryID     uint
	Name           string
	Image          *string
	RegistrationNo *string
	Price          decimal.Decimal
	Cost           decimal.Decimal
	Stock          int
	StockAlert     int
}

// CreateProduct creates a new product. When no code is supplied, an EAN-13
// code is assigned from the next free serial.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Price.IsNegative() || input.Cost.IsNegative() {
		return nil, apperror.NewBadRequestError("Price and cost must not be negative")
	}
	if input.Stock < 0 || input.StockAlert < 0 {
		return nil, apperror.NewBadRequestError("Stock and stock alert must not be negative")
	}

	product := &entity.Product{
		CategoryID:     input.CategoryID,
		Name:           input.Name,
		Image:          input.Image,
		RegistrationNo: input.RegistrationNo,
		Price:          input.Price,
		Cost:           input.Cost,
		Stock:          input.Stock,
		StockAlert:     input.StockAlert,
	}

	if input.Code != "" {
		if err := identifier.ValidateProductCode(input.Code); err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		existing, err := s.productRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = input.Code
		if err := s.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		return s.productRepo.GetByCode(ctx, product.Code)
	}

	for attempt := 0; attempt < sequenceAttempts; attempt++ {
		serial, err := s.productRepo.NextSerial(ctx)
		if err != nil {
			return nil, err
		}
		code, err := identifier.ProductCode(serial)
		if err != nil {
			var overflow *identifier.ErrSequenceOverflow
			if errors.As(err, &overflow) {
				return nil, apperror.NewAppError(http.StatusConflict, "Product code space exhausted")
			}
			return nil, err
		}

		product.Code = code
		err = s.productRepo.Create(ctx, product)
		if err == nil {
			return s.productRepo.GetByCode(ctx, product.Code)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperror.NewConflictError("Could not allocate a product code, try again")
}

// GetProduct retrieves a product by code
func (s *ProductService) GetProduct(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input. The code is the
// lookup key and is never changed.
type UpdateProductInput struct {
	CategoryID     *uint
	Name           *string
	RegistrationNo *string
	Price          *decimal.Decimal
	Cost           *decimal.Decimal
	Stock          *int
	StockAlert     *int
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, code string, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.RegistrationNo != nil {
		product.RegistrationNo = input.RegistrationNo
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return nil, apperror.NewBadRequestError("Cost must not be negative")
		}
		product.Cost = *input.Cost
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		if *input.StockAlert < 0 {
			return nil, apperror.NewBadRequestError("Stock alert must not be negative")
		}
		product.StockAlert = *input.StockAlert
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByCode(ctx, code)
}

// SetProductImage records the stored image path for a product
func (s *ProductService) SetProductImage(ctx context.Context, code, path string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Image = &path
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, code string) error {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, code)
}

var exportHeader = []string{"code", "name", "category", "registration_no", "price", "cost", "stock", "stock_alert"}

// ExportProducts streams the whole catalog as CSV
func (s *ProductService) ExportProducts(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	err := s.productRepo.ForEachBatch(ctx, exportBatchSize, func(products []entity.Product) error {
		for i := range products {
			p := &products[i]
			categoryName := ""
			if p.Category != nil {
				categoryName = p.Category.Name
			}
			registrationNo := ""
			if p.RegistrationNo != nil {
				registrationNo = *p.RegistrationNo
			}
			record := []string{
				p.Code,
				p.Name,
				categoryName,
				registrationNo,
				p.Price.StringFixed(2),
				p.Cost.StringFixed(2),
				strconv.Itoa(p.Stock),
				strconv.Itoa(p.StockAlert),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// ImportResult contains the result of a product import
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts reads a CSV in the export layout and creates a product per
// row. Rows without a code get one assigned. Bad rows are reported and
// skipped; the rest go through.
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperror.NewBadRequestError("Empty or unreadable CSV file")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, apperror.NewBadRequestError("CSV file must have a name column")
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryByName := make(map[string]uint, len(categories))
	for i := range categories {
		categoryByName[strings.ToLower(categories[i].Name)] = categories[i].ID
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	result := &ImportResult{}
	rowNum := 1 // header is row 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.TotalRows++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "", Message: err.Error()})
			continue
		}
		result.TotalRows++

		name := field(record, "name")
		if name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		categoryID, ok := categoryByName[strings.ToLower(field(record, "category"))]
		if !ok {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "category", Message: fmt.Sprintf("Unknown category %q", field(record, "category"))})
			continue
		}

		price, err := decimal.NewFromString(field(record, "price"))
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "price", Message: "Invalid price"})
			continue
		}
		cost, err := decimal.NewFromString(field(record, "cost"))
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "cost", Message: "Invalid cost"})
			continue
		}
		stock, err := strconv.Atoi(field(record, "stock"))
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "stock", Message: "Invalid stock"})
			continue
		}
		stockAlert, err := strconv.Atoi(field(record, "stock_alert"))
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "stock_alert", Message: "Invalid stock alert"})
			continue
		}

		input := &CreateProductInput{
			Code:       field(record, "code"),
			CategoryID: categoryID,
			Name:       name,
			Price:      price,
			Cost:       cost,
			Stock:      stock,
			StockAlert: stockAlert,
		}
		if reg := field(record, "registration_no"); reg != "" {
			input.RegistrationNo = &reg
		}

		if _, err := s.CreateProduct(ctx, input); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "", Message: apperror.GetAppError(err).Message})
			continue
		}
		result.Successful++
	}

	result.Failed = len(result.Errors)
	return result, nil
}
