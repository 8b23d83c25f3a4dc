package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func rbacRouter(role string, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		},
		RBACMiddleware(allowed...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func TestRBACAllowsMatchingRole(t *testing.T) {
	r := rbacRouter("admin", "admin")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRBACForbidsOtherRoles(t *testing.T) {
	r := rbacRouter("user", "admin")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRBACRequiresAuthentication(t *testing.T) {
	r := rbacRouter("", "admin")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if ip := getClientIP(c); ip != "203.0.113.9" {
		t.Errorf("expected forwarded ip, got %s", ip)
	}

	c.Request.Header.Del("X-Forwarded-For")
	if ip := getClientIP(c); ip != "10.0.0.1" {
		t.Errorf("expected remote addr ip, got %s", ip)
	}
}
