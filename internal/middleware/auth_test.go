package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"mentorhub-api/internal/auth"
	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
)

const secret = "test-secret"

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": middleware.MustUserID(c), "role": middleware.Role(c)})
	})
	admin := r.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/stats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, token string, viaQuery bool) *httptest.ResponseRecorder {
	if viaQuery && token != "" {
		path += "?token=" + token
	}
	req := httptest.NewRequest("GET", path, nil)
	if !viaQuery && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	r := router()
	if rec := get(r, "/whoami", "", false); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rec.Code)
	}
	if rec := get(r, "/whoami", "garbage", false); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", rec.Code)
	}
}

func TestAuthBearerHeader(t *testing.T) {
	r := router()
	tok, _ := auth.MakeToken("uid-1", model.RoleMember, secret)
	rec := get(r, "/whoami", tok, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthQueryToken(t *testing.T) {
	// websocket clients pass the token in the query string
	r := router()
	tok, _ := auth.MakeToken("uid-1", model.RoleMember, secret)
	rec := get(r, "/whoami", tok, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := router()

	memberTok, _ := auth.MakeToken("uid-1", model.RoleMember, secret)
	if rec := get(r, "/admin/stats", memberTok, false); rec.Code != http.StatusForbidden {
		t.Errorf("member on admin route: expected 403, got %d", rec.Code)
	}

	adminTok, _ := auth.MakeToken("uid-2", model.RoleAdmin, secret)
	if rec := get(r, "/admin/stats", adminTok, false); rec.Code != http.StatusOK {
		t.Errorf("admin on admin route: expected 200, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(1, 1)))
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/login", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/login", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", second.Code)
	}
}
