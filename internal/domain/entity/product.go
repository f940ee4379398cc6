package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a product category
type Category struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product represents a product in the catalog. The primary key is a
// 13-digit EAN-13 code; it is assigned at creation and never changes.
type Product struct {
	Code           string          `gorm:"type:char(13);primary_key" json:"code"`
	CategoryID     uint            `gorm:"not null;index" json:"category_id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Image          *string         `gorm:"size:255" json:"image,omitempty"`
	RegistrationNo *string         `gorm:"size:50" json:"registration_no,omitempty"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Stock          int             `gorm:"not null" json:"stock"`
	StockAlert     int             `gorm:"not null" json:"stock_alert"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// OutOfStock reports whether the product has no stock left
func (p *Product) OutOfStock() bool {
	return p.Stock == 0
}

// LowStock reports whether the product is at or below its reorder threshold
// while still having stock. A product with stock equal to the threshold is
// low, not out.
func (p *Product) LowStock() bool {
	return p.Stock > 0 && p.Stock <= p.StockAlert
}
