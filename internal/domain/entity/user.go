package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a back-office user
type User struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Email       string        `gorm:"size:100;unique;not null" json:"email"`
	Phone       *string       `gorm:"size:20" json:"phone,omitempty"`
	Role        enum.UserRole `gorm:"size:20;not null" json:"role"`
	Password    string        `gorm:"type:char(60);not null" json:"-"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
