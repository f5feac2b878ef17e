package handler

import (
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=255"`
	Description     string `json:"description" binding:"required"`
	Author          uint   `json:"author" binding:"required"`
	Category        uint   `json:"category" binding:"required"`
	ISBN            string `json:"isbn" binding:"required,isbn13"`
	CopiesAvailable int    `json:"copies_available" binding:"min=0"`
}

type ReplaceBookRequest CreateBookRequest

type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string `json:"description"`
	Author          *uint   `json:"author" binding:"omitempty,min=1"`
	Category        *uint   `json:"category" binding:"omitempty,min=1"`
	ISBN            *string `json:"isbn" binding:"omitempty,isbn13"`
	CopiesAvailable *int    `json:"copies_available" binding:"omitempty,min=0"`
}

type Book struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Author          uint       `json:"author"`
	Category        uint       `json:"category"`
	ISBN            string     `json:"isbn"`
	CopiesAvailable int        `json:"copies_available"`
	CreatedAt       model.Date `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt       model.Date `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type ListBooksResponse struct {
	Data []Book `json:"data"`
}

func toBook(b model.Book) Book {
	return Book{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		Author:          b.AuthorID,
		Category:        b.CategoryID,
		ISBN:            b.ISBN,
		CopiesAvailable: b.CopiesAvailable,
		CreatedAt:       model.Date{Time: b.CreatedAt},
		UpdatedAt:       model.Date{Time: b.UpdatedAt},
	}
}
