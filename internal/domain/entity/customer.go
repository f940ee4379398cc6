package entity

import "time"

// Customer represents a customer. The primary key is a "P"-prefixed
// six-digit code assigned sequentially at creation.
type Customer struct {
	Code      string    `gorm:"type:char(7);primary_key" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     *string   `gorm:"size:100" json:"email,omitempty"`
	Phone     *string   `gorm:"size:20" json:"phone,omitempty"`
	City      *string   `gorm:"size:100" json:"city,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CustomerCode;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
