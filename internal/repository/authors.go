package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *model.Author) error
	List(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id uint) (*model.Author, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id uint) error
}

type GormAuthorRepository struct {
	crud[model.Author]
}

func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{crud[model.Author]{db: db}}
}

func (r *GormAuthorRepository) Update(ctx context.Context, a *model.Author) error {
	return r.update(ctx, a.ID, map[string]any{
		"name":      a.Name,
		"biography": a.Biography,
	})
}
