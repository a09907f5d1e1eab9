package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TodoBoard/internal/config"
	"TodoBoard/internal/repo/repotest"
	"TodoBoard/internal/seed"
	"TodoBoard/internal/service"

	_ "TodoBoard/docs"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	svc := service.NewTodoService(repotest.NewMemoryTodoRepo(), nil,
		service.WithClock(func() time.Time { return now }))
	if _, err := svc.SeedIfEmpty(context.Background(), seed.Demo(now)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	cfg := config.Config{App: config.AppConfig{Env: "test", Version: "1.2.3"}}
	return newRouter(cfg, svc)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServiceRoutes(t *testing.T) {
	h := newTestEngine(t)

	w := get(t, h, "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("health: %d %s", w.Code, w.Body.String())
	}

	w = get(t, h, "/version")
	if !strings.Contains(w.Body.String(), "1.2.3") {
		t.Errorf("version: %s", w.Body.String())
	}

	w = get(t, h, "/swagger-doc.json")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/todos/due-today/count") {
		t.Errorf("swagger doc: %d", w.Code)
	}
}

func TestSeededDashboard(t *testing.T) {
	h := newTestEngine(t)

	w := get(t, h, "/api/v1/todos/due-today/count")
	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if count.Count != 2 {
		t.Errorf("Expected 2 todos due today, got %d", count.Count)
	}

	w = get(t, h, "/api/v1/todos?filter=completed")
	var list struct {
		Items []struct {
			Done bool `json:"done"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 completed todos, got %d", len(list.Items))
	}
	for _, it := range list.Items {
		if !it.Done {
			t.Error("completed view returned an open todo")
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/todos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
	}
}
