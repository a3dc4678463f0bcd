package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stretchr/testify/assert"
)

type stubTokens map[string]*service.Claims

func (s stubTokens) ValidateToken(token string) (*service.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

type stubSessions struct{ err error }

func (s stubSessions) ValidateSession(context.Context, *service.Claims) error { return s.err }

func guardedEngine(sessions SessionValidator) *gin.Engine {
	tokens := stubTokens{
		"admin-token":   {Role: model.RoleAdmin, Email: "a@x.co"},
		"student-token": {Role: model.RoleStudent, Email: "s@x.co"},
	}
	r := gin.New()
	r.GET("/admin", RequireJWT(tokens), CheckActiveSession(sessions), RequireRole(model.RoleAdmin),
		func(c *gin.Context) { c.String(http.StatusOK, GetClaims(c).Email) })
	return r
}

func TestGuards(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		sessions SessionValidator
		status   int
		contains string
	}{
		{"no header", "", stubSessions{}, http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"wrong scheme", "Basic admin-token", stubSessions{}, http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"unknown token", "Bearer forged", stubSessions{}, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"replaced session", "Bearer admin-token", stubSessions{err: service.ErrSessionInvalidated}, http.StatusUnauthorized, "SESSION_INVALIDATED"},
		{"wrong role", "Bearer student-token", stubSessions{}, http.StatusForbidden, "ADMIN_ACCESS_ONLY"},
		{"admin", "bearer admin-token", stubSessions{}, http.StatusOK, "a@x.co"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			guardedEngine(tc.sessions).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.contains)
		})
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireRole(model.RoleRecruiter), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
