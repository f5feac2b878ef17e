package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	List(ctx context.Context) ([]model.Member, error)
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Member, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, m *model.Member) error
	Delete(ctx context.Context, id uint) error
}

type GormMemberRepository struct {
	crud[model.Member]
}

func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{crud[model.Member]{db: db}}
}

func (r *GormMemberRepository) FindByUserID(ctx context.Context, userID uint) (*model.Member, error) {
	var m model.Member
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, classify(err)
	}
	return &m, nil
}

func (r *GormMemberRepository) Update(ctx context.Context, m *model.Member) error {
	return r.update(ctx, m.ID, map[string]any{
		"user_id": m.UserID,
		"address": m.Address,
	})
}
