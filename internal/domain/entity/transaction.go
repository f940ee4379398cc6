package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/enum"
)

// Transaction represents a sale. The primary key is an invoice number of the
// form INV-YYYY-MM-SSSSSSS-<customer code>, with the sequence scoped to the
// calendar month of the transaction date.
type Transaction struct {
	Number       string                 `gorm:"type:char(27);primary_key" json:"number"`
	UserID       uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerCode string                 `gorm:"type:char(7);not null;index" json:"customer_code"`
	Date         time.Time              `gorm:"type:date;not null" json:"date"`
	Total        decimal.Decimal        `gorm:"type:decimal(10,2);not null" json:"total"`
	Status       enum.TransactionStatus `gorm:"default:0" json:"status"`
	Notes        *string                `gorm:"type:text" json:"notes,omitempty"`
	Discount     *decimal.Decimal       `gorm:"type:decimal(10,2)" json:"discount,omitempty"`
	Tax          *decimal.Decimal       `gorm:"type:decimal(10,2)" json:"tax,omitempty"`
	ShippingFee  decimal.Decimal        `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_fee"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`

	// Relationships
	User     User                `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer           `gorm:"foreignKey:CustomerCode" json:"customer,omitempty"`
	Details  []TransactionDetail `gorm:"foreignKey:TransactionNumber;constraint:OnDelete:CASCADE" json:"details,omitempty"`
	Payments []Payment           `gorm:"foreignKey:TransactionNumber;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionDetail represents a line item in a transaction. UnitPrice is
// the product price at the time of sale.
type TransactionDetail struct {
	ID                uint            `gorm:"primary_key" json:"id"`
	TransactionNumber string          `gorm:"type:char(27);not null;index" json:"transaction_number"`
	ProductCode       string          `gorm:"type:char(13);not null;index" json:"product_code"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionNumber" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductCode" json:"product,omitempty"`
}

// TableName returns the table name for the TransactionDetail model
func (TransactionDetail) TableName() string {
	return "transaction_details"
}

// LineTotal returns quantity times the captured unit price
func (d *TransactionDetail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
