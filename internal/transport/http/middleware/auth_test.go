package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/token"
	"github.com/unighana/unighana-backend/internal/transport/http/middleware"
)

const testSecret = "middleware-test-secret-32-chars!!"

func newProtectedRouter(t *testing.T, tokens *token.Issuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, slog.Default()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString("userID"),
			"userEmail": c.GetString("userEmail"),
		})
	})
	return r
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Unauthorized(t *testing.T) {
	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newProtectedRouter(t, tokens)

	w := request(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Unauthorized(t *testing.T) {
	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newProtectedRouter(t, tokens)

	w := request(r, "Basic dXNlcjpwdw==")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuth_GarbageToken_Unauthorized(t *testing.T) {
	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newProtectedRouter(t, tokens)

	w := request(r, "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Unauthorized(t *testing.T) {
	expired := token.NewIssuer([]byte(testSecret), -time.Second)
	signed, err := expired.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newProtectedRouter(t, tokens)

	w := request(r, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongKeyToken_Unauthorized(t *testing.T) {
	other := token.NewIssuer([]byte("a-different-signing-secret-32ch!!"), time.Hour)
	signed, err := other.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	r := newProtectedRouter(t, tokens)

	w := request(r, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_SetsIdentityInContext(t *testing.T) {
	tokens := token.NewIssuer([]byte(testSecret), time.Hour)
	signed, err := tokens.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := newProtectedRouter(t, tokens)
	w := request(r, "Bearer "+signed)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{`"userID":"user-1"`, `"userEmail":"a@x.com"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}
