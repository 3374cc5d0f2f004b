package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return f[token], nil
}

func buildTestApp(bl fakeBlacklist) *echo.Echo {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "testsecret"}})
	e := echo.New()
	mw := NewMiddleware(bl)

	admin := e.Group("/api/admin", mw.AuthMiddleware(), mw.AdminMiddleware())
	admin.GET("/get-events", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})

	user := e.Group("/api/user", mw.AuthMiddleware())
	user.GET("/me", func(c echo.Context) error {
		claims := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
		return c.String(http.StatusOK, claims.UserID.String())
	})
	return e
}

func signTestToken(t *testing.T, roleID int) string {
	t.Helper()
	token, _, err := utils.GenerateToken(uuid.New(), roleID, constants.ScopeTokenAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func do(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRBAC(t *testing.T) {
	e := buildTestApp(fakeBlacklist{})

	if rec := do(e, "/api/admin/get-events", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := do(e, "/api/admin/get-events", "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
	if rec := do(e, "/api/admin/get-events", signTestToken(t, constants.RoleUser)); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for role_id 1, got %d", rec.Code)
	}
	if rec := do(e, "/api/admin/get-events", signTestToken(t, constants.RoleAdmin)); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for role_id 2, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "testsecret"}})
	token := signTestToken(t, constants.RoleUser)
	e := buildTestApp(fakeBlacklist{token: true})

	if rec := do(e, "/api/user/me", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	e := buildTestApp(fakeBlacklist{})
	rec := do(e, "/api/user/me", signTestToken(t, constants.RoleUser))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("body %q is not a user id", rec.Body.String())
	}
}
