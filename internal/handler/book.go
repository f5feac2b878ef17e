package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type BookHandler struct {
	repo       repository.BookRepository
	authors    existence
	categories existence
}

func NewBookHandler(repo repository.BookRepository, authors, categories existence) *BookHandler {
	return &BookHandler{
		repo:       repo,
		authors:    authors,
		categories: categories,
	}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.ReplaceBook)
		books.PATCH("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
		books.POST("", h.CreateBook)
	}
}

func (h *BookHandler) resolve(c *gin.Context, b *model.Book) bool {
	return resolveReferences(c, bookEntity,
		reference{field: "author", target: "Author", id: b.AuthorID, repo: h.authors},
		reference{field: "category", target: "Category", id: b.CategoryID, repo: h.categories},
	)
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book. The isbn must be exactly 13 characters.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:           req.Title,
		Description:     req.Description,
		AuthorID:        req.Author,
		CategoryID:      req.Category,
		ISBN:            req.ISBN,
		CopiesAvailable: req.CopiesAvailable,
	}

	if !h.resolve(c, &book) {
		return
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		bookEntity.writeFailed(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, BookResponse{Data: toBook(book)})
}

// ListBooks godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {object}  ListBooksResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		bookEntity.fail(c, "list")
		return
	}

	resp := ListBooksResponse{Data: make([]Book, 0, len(books))}
	for _, b := range books {
		resp.Data = append(resp.Data, toBook(b))
	}

	c.JSON(http.StatusOK, resp)
}

// GetBookByID godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := bookEntity.parseID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		bookEntity.fetchFailed(c, err, "failed to fetch book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*book)})
}

// ReplaceBook godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Book ID"
// @Param        payload  body      ReplaceBookRequest  true  "Book fields"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	id, ok := bookEntity.parseID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		bookEntity.fetchFailed(c, err, "failed to fetch book")
		return
	}

	var req ReplaceBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book.Title = req.Title
	book.Description = req.Description
	book.AuthorID = req.Author
	book.CategoryID = req.Category
	book.ISBN = req.ISBN
	book.CopiesAvailable = req.CopiesAvailable

	h.save(c, book)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book by id
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Book ID"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookEntity.parseID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		bookEntity.fetchFailed(c, err, "failed to fetch book")
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Title == nil && req.Description == nil && req.Author == nil &&
		req.Category == nil && req.ISBN == nil && req.CopiesAvailable == nil {
		noFieldsToUpdate(c)
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Author != nil {
		book.AuthorID = *req.Author
	}
	if req.Category != nil {
		book.CategoryID = *req.Category
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.CopiesAvailable != nil {
		book.CopiesAvailable = *req.CopiesAvailable
	}

	h.save(c, book)
}

func (h *BookHandler) save(c *gin.Context, book *model.Book) {
	if !h.resolve(c, book) {
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, book); err != nil {
		bookEntity.writeFailed(c, err, "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		bookEntity.fetchFailed(c, err, "failed to fetch updated book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Data: toBook(*updated)})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book that no loan references
// @Tags         books
// @Produce      json
// @Param        id   path      int     true  "Book ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      409  {object}  validation.ErrorResponse   "Book still referenced"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookEntity.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		bookEntity.deleteFailed(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
