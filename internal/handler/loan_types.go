package handler

import (
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

// CreateLoanRequest is also the PUT body. An omitted loan_date falls back to
// today on create and to the stored date on replace.
type CreateLoanRequest struct {
	Member     uint        `json:"member" binding:"required"`
	Book       uint        `json:"book" binding:"required"`
	LoanDate   *model.Date `json:"loan_date" swaggertype:"string" example:"2025-11-24"`
	ReturnDate *model.Date `json:"return_date" swaggertype:"string" example:"2025-12-01"`
}

type ReplaceLoanRequest CreateLoanRequest

// UpdateLoanRequest keeps track of which dates were sent so that an explicit
// null return_date clears it.
type UpdateLoanRequest struct {
	Member     *uint              `json:"member" binding:"omitempty,min=1"`
	Book       *uint              `json:"book" binding:"omitempty,min=1"`
	LoanDate   model.OptionalDate `json:"loan_date" swaggertype:"string" example:"2025-11-24"`
	ReturnDate model.OptionalDate `json:"return_date" swaggertype:"string" example:"2025-12-01"`
}

type Loan struct {
	ID         uint        `json:"id"`
	Member     uint        `json:"member"`
	Book       uint        `json:"book"`
	LoanDate   model.Date  `json:"loan_date" swaggertype:"string" example:"2025-11-24"`
	ReturnDate *model.Date `json:"return_date" swaggertype:"string" example:"2025-12-01"`
	CreatedAt  model.Date  `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt  model.Date  `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type LoanResponse struct {
	Data Loan `json:"data"`
}

type ListLoansResponse struct {
	Data []Loan `json:"data"`
}

func toLoan(l model.Loan) Loan {
	return Loan{
		ID:         l.ID,
		Member:     l.MemberID,
		Book:       l.BookID,
		LoanDate:   model.Date{Time: l.LoanDate},
		ReturnDate: model.DatePtr(l.ReturnDate),
		CreatedAt:  model.Date{Time: l.CreatedAt},
		UpdatedAt:  model.Date{Time: l.UpdatedAt},
	}
}
