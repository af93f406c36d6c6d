package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"abeg-fix/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]*models.Account

func (f fakeAuth) Authenticate(_ context.Context, token string) (*models.Account, error) {
	if token == "broken" {
		return nil, errors.New("connection refused")
	}
	if acc, ok := f[token]; ok {
		return acc, nil
	}
	return nil, fmt.Errorf("%w: token is not valid", models.ErrUnauthorized)
}

func newAuthRouter(allowUnverified bool, roles ...models.Role) *gin.Engine {
	auth := fakeAuth{
		"customer":   {ID: "c1", IsEmailVerified: true, Profile: &models.CustomerProfile{}},
		"artisan":    {ID: "a1", IsEmailVerified: true, Profile: models.NewArtisanProfile()},
		"unverified": {ID: "u1", Profile: &models.CustomerProfile{}},
	}
	handlers := []gin.HandlerFunc{AuthMiddleware(auth, allowUnverified)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentAccount(c).ID)
	})

	r := gin.New()
	r.GET("/", handlers...)
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter(false)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "No token, authorization denied"},
		{"wrong scheme", "Token customer", http.StatusUnauthorized, "Invalid authorization header format"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Token is not valid"},
		{"store failure", "Bearer broken", http.StatusInternalServerError, "Token is not valid"},
		{"unverified", "Bearer unverified", http.StatusForbidden, `"unverified":true`},
		{"ok", "Bearer customer", http.StatusOK, "c1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthMiddleware_AllowUnverified(t *testing.T) {
	w := get(newAuthRouter(true), "Bearer unverified")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter(false, models.RoleArtisan)

	w := get(r, "Bearer artisan")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "Bearer customer")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role customer is not authorized")
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	for range 3 {
		w := get(r, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := get(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error")
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}
