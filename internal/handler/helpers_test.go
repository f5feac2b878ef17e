package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authors := repository.NewAuthorRepository(db)
	categories := repository.NewCategoryRepository(db)
	books := repository.NewBookRepository(db)
	users := repository.NewUserRepository(db)
	members := repository.NewMemberRepository(db)
	loans := repository.NewLoanRepository(db)

	r.GET("/", Home)

	api := r.Group("")
	NewAuthorHandler(authors).RegisterRoutes(api)
	NewCategoryHandler(categories).RegisterRoutes(api)
	NewBookHandler(books, authors, categories).RegisterRoutes(api)
	NewMemberHandler(members, users).RegisterRoutes(api)
	NewLoanHandler(loans, members, books).RegisterRoutes(api)

	return r
}

// existsFunc adapts a function to the existence interface.
type existsFunc func(ctx context.Context, id uint) (bool, error)

func (f existsFunc) Exists(ctx context.Context, id uint) (bool, error) {
	return f(ctx, id)
}

func alwaysExists() existsFunc {
	return func(context.Context, uint) (bool, error) { return true, nil }
}

// doRequest sends body as JSON; a string body is sent verbatim.
func doRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body=%s", err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d, body=%s", status, w.Code, w.Body.String())
	}
}

// expectError checks the status and the error code of an error body.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()

	expectStatus(t, w, status)
	resp := decodeBody[validation.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %q, got %q", code, resp.Code)
	}
	return resp
}

// expectFieldError checks for a 400 naming field, and returns its message.
func expectFieldError(t *testing.T, w *httptest.ResponseRecorder, field string) string {
	t.Helper()

	resp := expectError(t, w, http.StatusBadRequest, validation.CodeValidationFailed)
	for _, fe := range resp.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	t.Fatalf("expected an error on field %q, got %+v", field, resp.Errors)
	return ""
}
