package event

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func discoverRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil)
	r.GET("/events/discover", h.Discover)
	return r
}

func TestDiscoverRejectsUnknownAgeBucket(t *testing.T) {
	r := discoverRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/discover?age=toddlers", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown age bucket, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown age bucket") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestDiscoverRejectsUnknownSortKey(t *testing.T) {
	r := discoverRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/discover?sort=alphabetical", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown sort key") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
