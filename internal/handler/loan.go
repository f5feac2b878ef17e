package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type LoanHandler struct {
	repo    repository.LoanRepository
	members existence
	books   existence
	now     func() time.Time
}

func NewLoanHandler(repo repository.LoanRepository, members, books existence) *LoanHandler {
	return &LoanHandler{
		repo:    repo,
		members: members,
		books:   books,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (h *LoanHandler) RegisterRoutes(r *gin.RouterGroup) {
	loans := r.Group("/loans")
	{
		loans.POST("", h.CreateLoan)
		loans.GET("", h.ListLoans)
		loans.GET("/:id", h.GetLoanByID)
		loans.PUT("/:id", h.ReplaceLoan)
		loans.PATCH("/:id", h.UpdateLoan)
		loans.DELETE("/:id", h.DeleteLoan)
	}
}

func (h *LoanHandler) today() time.Time {
	return model.DateOnly(h.now())
}

// settle fixes the dates a write will store and checks their order. It
// writes the response and returns false on a violation.
func (h *LoanHandler) settle(c *gin.Context, l *model.Loan, supplied, existing, returnDate *time.Time) bool {
	loanDate := validation.EffectiveLoanDate(supplied, existing, h.today())
	if respondRule(c, validation.ValidateLoanDates(loanDate, returnDate)) {
		return false
	}

	l.LoanDate = *loanDate
	l.ReturnDate = returnDate
	return true
}

func (h *LoanHandler) resolve(c *gin.Context, l *model.Loan) bool {
	return resolveReferences(c, loanEntity,
		reference{field: "member", target: "Member", id: l.MemberID, repo: h.members},
		reference{field: "book", target: "Book", id: l.BookID, repo: h.books},
	)
}

// CreateLoan godoc
// @Summary      Create a loan
// @Description  Lend a book to a member. loan_date defaults to today.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateLoanRequest          true  "Loan to create"
// @Success      201      {object}  LoanResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	loan := model.Loan{
		MemberID: req.Member,
		BookID:   req.Book,
	}

	if !h.settle(c, &loan, req.LoanDate.Ptr(), nil, req.ReturnDate.Ptr()) {
		return
	}
	if !h.resolve(c, &loan) {
		return
	}

	if err := h.repo.Create(c.Request.Context(), &loan); err != nil {
		loanEntity.writeFailed(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, LoanResponse{Data: toLoan(loan)})
}

// ListLoans godoc
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Success      200  {object}  ListLoansResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.repo.List(c.Request.Context())
	if err != nil {
		loanEntity.fail(c, "list")
		return
	}

	resp := ListLoansResponse{Data: make([]Loan, 0, len(loans))}
	for _, l := range loans {
		resp.Data = append(resp.Data, toLoan(l))
	}

	c.JSON(http.StatusOK, resp)
}

// GetLoanByID godoc
// @Summary      Get a loan
// @Tags         loans
// @Produce      json
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  LoanResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Loan not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans/{id} [get]
func (h *LoanHandler) GetLoanByID(c *gin.Context) {
	id, ok := loanEntity.parseID(c)
	if !ok {
		return
	}

	loan, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		loanEntity.fetchFailed(c, err, "failed to fetch loan")
		return
	}

	c.JSON(http.StatusOK, LoanResponse{Data: toLoan(*loan)})
}

// ReplaceLoan godoc
// @Summary      Replace a loan
// @Description  Replace a loan. member and book are required. An omitted loan_date keeps the stored one and an omitted return_date clears it. Use PATCH /loans/{id} to set only return_date.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Loan ID"
// @Param        payload  body      ReplaceLoanRequest  true  "Loan fields"
// @Success      200      {object}  LoanResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Loan not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans/{id} [put]
func (h *LoanHandler) ReplaceLoan(c *gin.Context) {
	id, ok := loanEntity.parseID(c)
	if !ok {
		return
	}

	loan, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		loanEntity.fetchFailed(c, err, "failed to fetch loan")
		return
	}

	var req ReplaceLoanRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	stored := loan.LoanDate
	if !h.settle(c, loan, req.LoanDate.Ptr(), &stored, req.ReturnDate.Ptr()) {
		return
	}
	loan.MemberID = req.Member
	loan.BookID = req.Book

	h.save(c, loan)
}

// UpdateLoan godoc
// @Summary      Update a loan
// @Description  Partially update a loan. An explicit null return_date clears it.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Loan ID"
// @Param        payload  body      UpdateLoanRequest  true  "Fields to update"
// @Success      200      {object}  LoanResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Loan not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans/{id} [patch]
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	id, ok := loanEntity.parseID(c)
	if !ok {
		return
	}

	loan, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		loanEntity.fetchFailed(c, err, "failed to fetch loan")
		return
	}

	var req UpdateLoanRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Member == nil && req.Book == nil && !req.LoanDate.Set && !req.ReturnDate.Set {
		noFieldsToUpdate(c)
		return
	}

	var supplied *time.Time
	if req.LoanDate.Set {
		supplied = req.LoanDate.Value.Ptr()
		if supplied == nil {
			validation.Respond(c, validation.NewError("loan_date", "required", "loan_date may not be null"))
			return
		}
	}

	returnDate := loan.ReturnDate
	if req.ReturnDate.Set {
		returnDate = req.ReturnDate.Value.Ptr()
	}

	stored := loan.LoanDate
	if !h.settle(c, loan, supplied, &stored, returnDate) {
		return
	}
	if req.Member != nil {
		loan.MemberID = *req.Member
	}
	if req.Book != nil {
		loan.BookID = *req.Book
	}

	h.save(c, loan)
}

func (h *LoanHandler) save(c *gin.Context, loan *model.Loan) {
	if !h.resolve(c, loan) {
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, loan); err != nil {
		loanEntity.writeFailed(c, err, "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, loan.ID)
	if err != nil {
		loanEntity.fetchFailed(c, err, "failed to fetch updated loan")
		return
	}

	c.JSON(http.StatusOK, LoanResponse{Data: toLoan(*updated)})
}

// DeleteLoan godoc
// @Summary      Delete a loan
// @Tags         loans
// @Produce      json
// @Param        id   path      int     true  "Loan ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Loan not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := loanEntity.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		loanEntity.deleteFailed(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
