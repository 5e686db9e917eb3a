package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/pkg/jwt"
)

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"abc":           "abc",
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"  Bearer abc ": "abc",
		"":              "",
		"   ":           "",
	}
	for raw, want := range cases {
		if got := NormalizeToken(raw); got != want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", raw, got, want)
		}
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthRejectsMissingToken(t *testing.T) {
	jwt.SetSecret("mw-test-secret")
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	jwt.SetSecret("mw-test-secret")
	r := newAuthRouter()

	token, err := jwt.Sign(time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	jwt.SetSecret("mw-test-secret")
	r := newAuthRouter()

	token, err := jwt.Sign(time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
