package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type CategoryHandler struct {
	repo repository.CategoryRepository
}

func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PUT("/:id", h.ReplaceCategory)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCategoryRequest      true  "Category to create"
// @Success      201      {object}  CategoryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	category := model.Category{Name: req.Name}

	if err := h.repo.Create(c.Request.Context(), &category); err != nil {
		categoryEntity.writeFailed(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: toCategory(category)})
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  ListCategoriesResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.List(c.Request.Context())
	if err != nil {
		categoryEntity.fail(c, "list")
		return
	}

	resp := ListCategoriesResponse{Data: make([]Category, 0, len(categories))}
	for _, cat := range categories {
		resp.Data = append(resp.Data, toCategory(cat))
	}

	c.JSON(http.StatusOK, resp)
}

// GetCategoryByID godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Category not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := categoryEntity.parseID(c)
	if !ok {
		return
	}

	category, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		categoryEntity.fetchFailed(c, err, "failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: toCategory(*category)})
}

// ReplaceCategory godoc
// @Summary      Replace a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Category ID"
// @Param        payload  body      ReplaceCategoryRequest  true  "Category fields"
// @Success      200      {object}  CategoryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Category not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories/{id} [put]
func (h *CategoryHandler) ReplaceCategory(c *gin.Context) {
	id, ok := categoryEntity.parseID(c)
	if !ok {
		return
	}

	category, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		categoryEntity.fetchFailed(c, err, "failed to fetch category")
		return
	}

	var req ReplaceCategoryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	category.Name = req.Name

	h.save(c, category)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Category ID"
// @Param        payload  body      UpdateCategoryRequest  true  "Fields to update"
// @Success      200      {object}  CategoryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Category not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := categoryEntity.parseID(c)
	if !ok {
		return
	}

	category, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		categoryEntity.fetchFailed(c, err, "failed to fetch category")
		return
	}

	var req UpdateCategoryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil {
		noFieldsToUpdate(c)
		return
	}
	category.Name = *req.Name

	h.save(c, category)
}

func (h *CategoryHandler) save(c *gin.Context, category *model.Category) {
	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, category); err != nil {
		categoryEntity.writeFailed(c, err, "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, category.ID)
	if err != nil {
		categoryEntity.fetchFailed(c, err, "failed to fetch updated category")
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: toCategory(*updated)})
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Delete a category that no book references
// @Tags         categories
// @Produce      json
// @Param        id   path      int     true  "Category ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Category not found"
// @Failure      409  {object}  validation.ErrorResponse   "Category still referenced"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := categoryEntity.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		categoryEntity.deleteFailed(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
