package handler

import (
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateAuthorRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Biography string `json:"biography" binding:"required"`
}

// ReplaceAuthorRequest is the PUT body; every field is required.
type ReplaceAuthorRequest CreateAuthorRequest

type UpdateAuthorRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=255"`
	Biography *string `json:"biography"`
}

type Author struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Biography string     `json:"biography"`
	CreatedAt model.Date `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt model.Date `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type AuthorResponse struct {
	Data Author `json:"data"`
}

type ListAuthorsResponse struct {
	Data []Author `json:"data"`
}

func toAuthor(a model.Author) Author {
	return Author{
		ID:        a.ID,
		Name:      a.Name,
		Biography: a.Biography,
		CreatedAt: model.Date{Time: a.CreatedAt},
		UpdatedAt: model.Date{Time: a.UpdatedAt},
	}
}
