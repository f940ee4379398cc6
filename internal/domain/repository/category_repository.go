package repository

import (
	"context"

	"github.com/tokosakti/pos-api/internal/domain/entity"
)

// CategoryRepository defines data access for categories
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete removes the category; its products go with it (cascade)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]entity.Category, error)
}
