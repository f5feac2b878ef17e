package handler

import (
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ReplaceCategoryRequest CreateCategoryRequest

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

type Category struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	CreatedAt model.Date `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt model.Date `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type CategoryResponse struct {
	Data Category `json:"data"`
}

type ListCategoriesResponse struct {
	Data []Category `json:"data"`
}

func toCategory(cat model.Category) Category {
	return Category{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: model.Date{Time: cat.CreatedAt},
		UpdatedAt: model.Date{Time: cat.UpdatedAt},
	}
}
