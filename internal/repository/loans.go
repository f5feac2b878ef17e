package repository

import (
	"context"
	"time"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
)

type LoanRepository interface {
	Create(ctx context.Context, l *model.Loan) error
	List(ctx context.Context) ([]model.Loan, error)
	FindByID(ctx context.Context, id uint) (*model.Loan, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, l *model.Loan) error
	Delete(ctx context.Context, id uint) error
}

type GormLoanRepository struct {
	crud[model.Loan]
}

func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{crud[model.Loan]{db: db}}
}

// loanDates truncates both dates to the calendar day they fall on.
func loanDates(l *model.Loan) (time.Time, *time.Time) {
	loanDate := model.DateOnly(l.LoanDate)
	if l.ReturnDate == nil {
		return loanDate, nil
	}
	returnDate := model.DateOnly(*l.ReturnDate)
	return loanDate, &returnDate
}

func (r *GormLoanRepository) Create(ctx context.Context, l *model.Loan) error {
	l.LoanDate, l.ReturnDate = loanDates(l)
	return r.crud.Create(ctx, l)
}

// Update writes return_date even when it is nil, which clears it.
func (r *GormLoanRepository) Update(ctx context.Context, l *model.Loan) error {
	l.LoanDate, l.ReturnDate = loanDates(l)
	fields := map[string]any{
		"member_id":   l.MemberID,
		"book_id":     l.BookID,
		"loan_date":   l.LoanDate,
		"return_date": nil,
	}
	if l.ReturnDate != nil {
		fields["return_date"] = *l.ReturnDate
	}
	return r.update(ctx, l.ID, fields)
}
