package request

import "github.com/shopspring/decimal"

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateProductRequest represents the create product request body. An empty
// code means one is assigned by the server.
type CreateProductRequest struct {
	Code           string          `json:"code"`
	CategoryID     uint            `json:"category_id" binding:"required"`
	Name           string          `json:"name" binding:"required,max=100"`
	RegistrationNo *string         `json:"registration_no"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Cost           decimal.Decimal `json:"cost" binding:"required"`
	Stock          int             `json:"stock" binding:"min=0"`
	StockAlert     int             `json:"stock_alert" binding:"min=0"`
}

// UpdateProductRequest represents the update product request body
type UpdateProductRequest struct {
	CategoryID     *uint            `json:"category_id"`
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	RegistrationNo *string          `json:"registration_no"`
	Price          *decimal.Decimal `json:"price"`
	Cost           *decimal.Decimal `json:"cost"`
	Stock          *int             `json:"stock"`
	StockAlert     *int             `json:"stock_alert"`
}

// CreateCustomerRequest represents the create customer request body
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents the update customer request body
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	Address *string `json:"address"`
}
