package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/testutil"
)

func TestHome_Welcome(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doRequest(t, router, http.MethodGet, "/", nil)
	expectStatus(t, w, http.StatusOK)

	if w.Body.String() != "Welcome to the Library Management System!" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain, got %q", ct)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

func setupHealthRouter(p pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler(p, "sqlite", time.Now(), "test").RegisterRoutes(r)
	return r
}

func TestHealth_OK(t *testing.T) {
	router := setupHealthRouter(pingFunc(func(context.Context) error { return nil }))

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody[map[string]any](t, w)
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestReady_DatabaseUp(t *testing.T) {
	db := testutil.NewTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	router := setupHealthRouter(sqlDB)

	w := doRequest(t, router, http.MethodGet, "/ready", nil)
	expectStatus(t, w, http.StatusOK)

	if body := decodeBody[map[string]any](t, w); body["status"] != "ready" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestReady_DatabaseDown_Returns503(t *testing.T) {
	router := setupHealthRouter(pingFunc(func(context.Context) error {
		return errors.New("dial tcp db.internal:5432: connection refused")
	}))

	w := doRequest(t, router, http.MethodGet, "/ready", nil)
	expectStatus(t, w, http.StatusServiceUnavailable)

	body := decodeBody[map[string]any](t, w)
	db, _ := body["db"].(map[string]any)
	if body["status"] != "unhealthy" || db["status"] != "down" || db["driver"] != "sqlite" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := db["error"]; ok {
		t.Errorf("driver error must not be exposed, got %v", db)
	}
	if strings.Contains(w.Body.String(), "db.internal") {
		t.Errorf("response leaks the database host: %s", w.Body.String())
	}
}
