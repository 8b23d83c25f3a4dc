package notification

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vadkul/vadkul-backend/config"
)

func streamRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, cfg)
	r.GET("/notifications/stream-token", h.StreamWithToken)
	return r
}

func signStreamToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestStreamWithTokenRequiresToken(t *testing.T) {
	r := streamRouter(&config.Config{JWTAccessSecret: "stream-secret"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications/stream-token", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestStreamWithTokenVerifiesAgainstInjectedSecret(t *testing.T) {
	r := streamRouter(&config.Config{JWTAccessSecret: "stream-secret"})

	w := httptest.NewRecorder()
	token := signStreamToken(t, "some-other-secret", 7)
	req := httptest.NewRequest(http.MethodGet, "/notifications/stream-token?token="+token, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with the wrong secret, got %d", w.Code)
	}
}
