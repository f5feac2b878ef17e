package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

// UserRepository gives access to identity records. The catalog API only
// reads them; the create-user command writes them.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type GormUserRepository struct {
	crud[model.User]
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{crud[model.User]{db: db}}
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, classify(err)
	}
	return &u, nil
}
