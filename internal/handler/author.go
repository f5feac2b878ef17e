package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type AuthorHandler struct {
	repo repository.AuthorRepository
}

func NewAuthorHandler(repo repository.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.POST("", h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.PUT("/:id", h.ReplaceAuthor)
		authors.PATCH("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create a new author with name and biography
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{
		Name:      req.Name,
		Biography: req.Biography,
	}

	if err := h.repo.Create(c.Request.Context(), &author); err != nil {
		authorEntity.writeFailed(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, AuthorResponse{Data: toAuthor(author)})
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get a list of all authors
// @Tags         authors
// @Produce      json
// @Success      200  {object}  ListAuthorsResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.repo.List(c.Request.Context())
	if err != nil {
		authorEntity.fail(c, "list")
		return
	}

	resp := ListAuthorsResponse{Data: make([]Author, 0, len(authors))}
	for _, a := range authors {
		resp.Data = append(resp.Data, toAuthor(a))
	}

	c.JSON(http.StatusOK, resp)
}

// GetAuthorByID godoc
// @Summary      Get an author
// @Description  Get a single author by id
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := authorEntity.parseID(c)
	if !ok {
		return
	}

	author, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		authorEntity.fetchFailed(c, err, "failed to fetch author")
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*author)})
}

// ReplaceAuthor godoc
// @Summary      Replace an author
// @Description  Replace every field of an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Author ID"
// @Param        payload  body      ReplaceAuthorRequest  true  "Author fields"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) ReplaceAuthor(c *gin.Context) {
	id, ok := authorEntity.parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	author, err := h.repo.FindByID(ctx, id)
	if err != nil {
		authorEntity.fetchFailed(c, err, "failed to fetch author")
		return
	}

	var req ReplaceAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author.Name = req.Name
	author.Biography = req.Biography

	h.save(c, author)
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Partially update an author by id
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Author ID"
// @Param        payload  body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{id} [patch]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := authorEntity.parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	author, err := h.repo.FindByID(ctx, id)
	if err != nil {
		authorEntity.fetchFailed(c, err, "failed to fetch author")
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil && req.Biography == nil {
		noFieldsToUpdate(c)
		return
	}

	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Biography != nil {
		author.Biography = *req.Biography
	}

	h.save(c, author)
}

func (h *AuthorHandler) save(c *gin.Context, author *model.Author) {
	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, author); err != nil {
		authorEntity.writeFailed(c, err, "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, author.ID)
	if err != nil {
		authorEntity.fetchFailed(c, err, "failed to fetch updated author")
		return
	}

	c.JSON(http.StatusOK, AuthorResponse{Data: toAuthor(*updated)})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author that no book references
// @Tags         authors
// @Produce      json
// @Param        id   path      int     true  "Author ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Author not found"
// @Failure      409  {object}  validation.ErrorResponse   "Author still referenced"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := authorEntity.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		authorEntity.deleteFailed(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
