package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

type GormBookRepository struct {
	crud[model.Book]
}

func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{crud[model.Book]{db: db}}
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.update(ctx, book.ID, map[string]any{
		"title":            book.Title,
		"description":      book.Description,
		"author_id":        book.AuthorID,
		"category_id":      book.CategoryID,
		"isbn":             book.ISBN,
		"copies_available": book.CopiesAvailable,
	})
}
