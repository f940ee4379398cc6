package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

// UserFilterParams represents filter parameters for user listing
type UserFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Role       *enum.UserRole
	SortBy     string
	SortOrder  string
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *UserFilterParams) ([]entity.User, int64, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
