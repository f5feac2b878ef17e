package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/testutil"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 9, 1, 15, 30, 0, 0, time.UTC)

func setupLoanRouter(db *gorm.DB) *gin.Engine {
	return setupLoanRouterWithRepo(
		repository.NewLoanRepository(db),
		repository.NewMemberRepository(db),
		repository.NewBookRepository(db),
	)
}

func setupLoanRouterWithRepo(loanRepo repository.LoanRepository, members, books existence) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewLoanHandler(loanRepo, members, books)
	h.now = func() time.Time { return fixedNow }
	h.RegisterRoutes(r.Group(""))

	return r
}

type fakeLoanRepo struct {
	FindByIDFn func(ctx context.Context, id uint) (*model.Loan, error)
	UpdateFn   func(ctx context.Context, l *model.Loan) error
	DeleteFn   func(ctx context.Context, id uint) error
}

func (f *fakeLoanRepo) Create(ctx context.Context, l *model.Loan) error {
	return nil
}

func (f *fakeLoanRepo) List(ctx context.Context) ([]model.Loan, error) {
	return nil, errors.New("db down")
}

func (f *fakeLoanRepo) FindByID(ctx context.Context, id uint) (*model.Loan, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLoanRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return false, nil
}

func (f *fakeLoanRepo) Update(ctx context.Context, l *model.Loan) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, l)
	}
	return nil
}

func (f *fakeLoanRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func loanPath(l model.Loan) string {
	return fmt.Sprintf("/loans/%d", l.ID)
}

func expectDate(t *testing.T, field string, got *model.Date, want string) {
	t.Helper()

	if want == "" {
		if got != nil {
			t.Errorf("expected %s to be null, got %s", field, got.Format(model.DateLayout))
		}
		return
	}
	if got == nil {
		t.Fatalf("expected %s %s, got null", field, want)
	}
	if s := got.Format(model.DateLayout); s != want {
		t.Errorf("expected %s %s, got %s", field, want, s)
	}
}

func TestCreateLoan_DefaultsLoanDateToToday(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPost, "/loans", map[string]any{
		"member": lib.Member.ID,
		"book":   lib.Book.ID,
	})
	expectStatus(t, w, http.StatusCreated)

	got := decodeBody[LoanResponse](t, w).Data
	expectDate(t, "loan_date", &got.LoanDate, "2024-09-01")
	expectDate(t, "return_date", got.ReturnDate, "")

	var stored model.Loan
	if err := db.First(&stored, got.ID).Error; err != nil {
		t.Fatalf("expected loan in db: %v", err)
	}
	if s := stored.LoanDate.Format(model.DateLayout); s != "2024-09-01" {
		t.Errorf("expected stored loan_date 2024-09-01, got %s", s)
	}
}

func TestCreateLoan_ReturnBeforeDefaultLoanDate_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPost, "/loans", map[string]any{
		"member":      lib.Member.ID,
		"book":        lib.Book.ID,
		"return_date": "2024-08-31",
	})

	if msg := expectFieldError(t, w, "return_date"); msg != validation.LoanDatesMessage {
		t.Errorf("expected message %q, got %q", validation.LoanDatesMessage, msg)
	}
}

func TestCreateLoan_DateOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	cases := []struct {
		name       string
		returnDate any
		status     int
	}{
		{"before", "2024-08-24", http.StatusBadRequest},
		{"same day", "2024-08-25", http.StatusCreated},
		{"after", "2024-09-10", http.StatusCreated},
		{"null", nil, http.StatusCreated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/loans", map[string]any{
				"member":      lib.Member.ID,
				"book":        lib.Book.ID,
				"loan_date":   "2024-08-25",
				"return_date": tc.returnDate,
			})
			expectStatus(t, w, tc.status)
		})
	}
}

func TestCreateLoan_UnknownReferences_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPost, "/loans", map[string]any{"member": 999, "book": lib.Book.ID})
	if msg := expectFieldError(t, w, "member"); msg != "referenced Member does not exist" {
		t.Errorf("unexpected message %q", msg)
	}

	w = doRequest(t, router, http.MethodPost, "/loans", map[string]any{"member": lib.Member.ID, "book": 999})
	expectFieldError(t, w, "book")
}

func TestCreateLoan_MalformedDate_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPost, "/loans", map[string]any{
		"member":    lib.Member.ID,
		"book":      lib.Book.ID,
		"loan_date": "yesterday",
	})

	expectStatus(t, w, http.StatusBadRequest)
}

func TestUpdateLoan_ReturnDateOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPatch, loanPath(lib.Loan), map[string]any{"return_date": "2024-09-05"})
	expectStatus(t, w, http.StatusOK)

	got := decodeBody[LoanResponse](t, w).Data
	expectDate(t, "loan_date", &got.LoanDate, "2024-08-25")
	expectDate(t, "return_date", got.ReturnDate, "2024-09-05")
	if got.Member != lib.Member.ID || got.Book != lib.Book.ID {
		t.Errorf("expected references to be kept, got %+v", got)
	}
}

func TestReplaceLoan_ReturnDateOnly_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPut, loanPath(lib.Loan), map[string]any{"return_date": "2024-09-05"})

	expectFieldError(t, w, "member")
}

func TestUpdateLoan_ReturnBeforeStoredLoanDate_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPatch, loanPath(lib.Loan), map[string]any{"return_date": "2024-08-20"})

	expectFieldError(t, w, "return_date")
}

func TestUpdateLoan_NullReturnDateClears(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)
	returned := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	loan := testutil.SeedLoan(t, db, lib.Member, lib.Book, lib.Loan.LoanDate, &returned)

	w := doRequest(t, router, http.MethodPatch, loanPath(loan), `{"return_date": null}`)
	expectStatus(t, w, http.StatusOK)

	got := decodeBody[LoanResponse](t, w).Data
	expectDate(t, "return_date", got.ReturnDate, "")
}

func TestUpdateLoan_NullLoanDate_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPatch, loanPath(lib.Loan), `{"loan_date": null}`)

	expectFieldError(t, w, "loan_date")
}

func TestUpdateLoan_NoFieldsToUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPatch, loanPath(lib.Loan), map[string]any{})

	expectError(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")
}

func TestReplaceLoan_KeepsStoredLoanDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPut, loanPath(lib.Loan), map[string]any{
		"member":      lib.Member.ID,
		"book":        lib.Book.ID,
		"return_date": "2024-08-30",
	})
	expectStatus(t, w, http.StatusOK)

	got := decodeBody[LoanResponse](t, w).Data
	expectDate(t, "loan_date", &got.LoanDate, "2024-08-25")
	expectDate(t, "return_date", got.ReturnDate, "2024-08-30")
}

func TestReplaceLoan_OmittedReturnDateClears(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)
	returned := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	loan := testutil.SeedLoan(t, db, lib.Member, lib.Book, lib.Loan.LoanDate, &returned)

	w := doRequest(t, router, http.MethodPut, loanPath(loan), map[string]any{
		"member":    lib.Member.ID,
		"book":      lib.Book.ID,
		"loan_date": "2024-08-26",
	})
	expectStatus(t, w, http.StatusOK)

	got := decodeBody[LoanResponse](t, w).Data
	expectDate(t, "loan_date", &got.LoanDate, "2024-08-26")
	expectDate(t, "return_date", got.ReturnDate, "")
}

func TestReplaceLoan_ReturnBeforeLoanDate_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPut, loanPath(lib.Loan), map[string]any{
		"member":      lib.Member.ID,
		"book":        lib.Book.ID,
		"return_date": "2024-08-01",
	})

	expectFieldError(t, w, "return_date")
}

func TestReplaceLoan_MissingMember_Returns400(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodPut, loanPath(lib.Loan), map[string]any{"book": lib.Book.ID})

	expectFieldError(t, w, "member")
}

func TestGetLoanByID_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodGet, loanPath(lib.Loan), nil)
	expectStatus(t, w, http.StatusOK)

	got := decodeBody[LoanResponse](t, w).Data
	if got.ID != lib.Loan.ID || got.Member != lib.Member.ID || got.Book != lib.Book.ID {
		t.Errorf("unexpected loan %+v", got)
	}
	expectDate(t, "loan_date", &got.LoanDate, "2024-08-25")
}

func TestListLoans_InternalError_Returns500(t *testing.T) {
	router := setupLoanRouterWithRepo(&fakeLoanRepo{}, alwaysExists(), alwaysExists())

	w := doRequest(t, router, http.MethodGet, "/loans", nil)

	expectError(t, w, http.StatusInternalServerError, "LOAN_LIST_FAILED")
}

func TestUpdateLoan_InternalErrorOnSave_Returns500(t *testing.T) {
	router := setupLoanRouterWithRepo(&fakeLoanRepo{
		FindByIDFn: func(ctx context.Context, id uint) (*model.Loan, error) {
			return &model.Loan{ID: id, MemberID: 1, BookID: 1, LoanDate: fixedNow}, nil
		},
		UpdateFn: func(ctx context.Context, l *model.Loan) error {
			return errors.New("db down")
		},
	}, alwaysExists(), alwaysExists())

	w := doRequest(t, router, http.MethodPatch, "/loans/1", map[string]any{"return_date": "2024-09-03"})

	expectError(t, w, http.StatusInternalServerError, "LOAN_UPDATE_FAILED")
}

func TestDeleteLoan_ThenMemberAndBookCanGo(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodDelete, loanPath(lib.Loan), nil)
	expectStatus(t, w, http.StatusNoContent)

	w = doRequest(t, router, http.MethodGet, loanPath(lib.Loan), nil)
	expectError(t, w, http.StatusNotFound, "LOAN_NOT_FOUND")

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/members/%d", lib.Member.ID), nil)
	expectStatus(t, w, http.StatusNoContent)

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/books/%d", lib.Book.ID), nil)
	expectStatus(t, w, http.StatusNoContent)
}

func TestDeleteLoan_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupLoanRouter(db)

	w := doRequest(t, router, http.MethodDelete, "/loans/12", nil)

	expectError(t, w, http.StatusNotFound, "LOAN_NOT_FOUND")
}
