package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type GormCategoryRepository struct {
	crud[model.Category]
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{crud[model.Category]{db: db}}
}

func (r *GormCategoryRepository) Update(ctx context.Context, c *model.Category) error {
	return r.update(ctx, c.ID, map[string]any{
		"name": c.Name,
	})
}
