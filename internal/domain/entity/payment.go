package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokosakti/pos-api/internal/domain/enum"
)

// Payment represents a payment against a transaction. The primary key is a
// number of the form PAY-YYYYMMDD-SSSSSSS, with the sequence scoped to the
// calendar day of the payment date. A transaction may have several payments.
type Payment struct {
	Number            string             `gorm:"type:char(20);primary_key" json:"number"`
	TransactionNumber string             `gorm:"type:char(27);not null;index" json:"transaction_number"`
	Method            enum.PaymentMethod `gorm:"default:0" json:"method"`
	Amount            decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Note              *string            `gorm:"size:255" json:"note,omitempty"`
	Date              time.Time          `gorm:"type:date;not null" json:"date"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionNumber" json:"-"`
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
