package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/testutil"
)

func TestCategory_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodPost, "/categories", CreateCategoryRequest{Name: "Science Fiction"})
	expectStatus(t, w, http.StatusCreated)
	created := decodeBody[CategoryResponse](t, w).Data
	path := fmt.Sprintf("/categories/%d", created.ID)

	w = doRequest(t, router, http.MethodGet, path, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decodeBody[CategoryResponse](t, w).Data.Name; got != "Science Fiction" {
		t.Errorf("expected name %q, got %q", "Science Fiction", got)
	}

	w = doRequest(t, router, http.MethodPut, path, ReplaceCategoryRequest{Name: "Sci-Fi"})
	expectStatus(t, w, http.StatusOK)
	if got := decodeBody[CategoryResponse](t, w).Data.Name; got != "Sci-Fi" {
		t.Errorf("expected name %q, got %q", "Sci-Fi", got)
	}

	w = doRequest(t, router, http.MethodPatch, path, map[string]any{"name": "SF"})
	expectStatus(t, w, http.StatusOK)

	w = doRequest(t, router, http.MethodGet, "/categories", nil)
	expectStatus(t, w, http.StatusOK)
	if list := decodeBody[ListCategoriesResponse](t, w).Data; len(list) != 1 || list[0].Name != "SF" {
		t.Errorf("unexpected list %+v", list)
	}

	w = doRequest(t, router, http.MethodDelete, path, nil)
	expectStatus(t, w, http.StatusNoContent)

	w = doRequest(t, router, http.MethodGet, path, nil)
	expectError(t, w, http.StatusNotFound, "CATEGORY_NOT_FOUND")
}

func TestCreateCategory_ValidationError_MissingName(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodPost, "/categories", map[string]any{})

	expectFieldError(t, w, "name")
}

func TestUpdateCategory_NoFieldsToUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	category := testutil.SeedCategory(t, db, "Fantasy")

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/categories/%d", category.ID), map[string]any{})

	expectError(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")
}

func TestDeleteCategory_InUse_Returns409(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	lib := testutil.SeedLibrary(t, db)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/categories/%d", lib.Category.ID), nil)

	expectError(t, w, http.StatusConflict, "CATEGORY_IN_USE")
}

func TestCategory_InvalidID(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodDelete, "/categories/x", nil)

	expectError(t, w, http.StatusBadRequest, "INVALID_CATEGORY_ID")
}
