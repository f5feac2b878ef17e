package validation

import (
	"time"
	"unicode/utf8"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

const (
	ISBNLength = 13

	ISBNLengthMessage = "ISBN must be 13 characters long."
	LoanDatesMessage  = "Return date cannot be before the loan date."
)

// ValidationError is a payload rule violation on a single field.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewError(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// ValidateISBN only checks the length, counted in characters.
func ValidateISBN(isbn string) error {
	if utf8.RuneCountInString(isbn) != ISBNLength {
		return NewError("isbn", "isbn13", ISBNLengthMessage)
	}
	return nil
}

// EffectiveLoanDate picks the loan date a write will end up storing: the
// supplied value, else the stored one, else today.
func EffectiveLoanDate(supplied, existing *time.Time, today time.Time) *time.Time {
	var d time.Time
	switch {
	case supplied != nil:
		d = *supplied
	case existing != nil:
		d = *existing
	case !today.IsZero():
		d = today
	default:
		return nil
	}
	d = model.DateOnly(d)
	return &d
}

// ValidateLoanDates rejects a return date earlier than the loan date. Missing
// values skip the check.
func ValidateLoanDates(loanDate, returnDate *time.Time) error {
	if loanDate == nil || returnDate == nil {
		return nil
	}
	if model.DateOnly(*returnDate).Before(model.DateOnly(*loanDate)) {
		return NewError("return_date", "date_order", LoanDatesMessage)
	}
	return nil
}
