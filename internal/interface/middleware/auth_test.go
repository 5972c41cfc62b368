package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/infrastructure/memory"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager, *entity.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	u := &entity.User{Name: "Kasyfil", Email: "kasyfil@medico.test", Role: entity.RoleDoctor}
	require.NoError(t, store.Users().Create(context.Background(), u))

	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	auth := Authenticate(store.Users(), jwt, helpers.NewDiscardLogger())
	r.GET("/me", auth, WithUser(func(c *gin.Context, u *entity.User) {
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	}))
	r.GET("/pharmacy", auth, RequireRoles(entity.RolePharmacist), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, jwt, u
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, jwt, u := newAuthRouter(t)

	good, _, err := jwt.Issue(u.ID)
	require.NoError(t, err)
	ghost, _, err := jwt.Issue("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)

	w := get(r, "/me", "Bearer "+good)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	tests := []struct {
		name, header, msg string
	}{
		{"missing header", "", "Authentication required"},
		{"wrong scheme", "Basic " + good, "Authentication required"},
		{"bad token", "Bearer nope", "Invalid or expired token"},
		{"unknown user", "Bearer " + ghost, "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	r, jwt, u := newAuthRouter(t)
	tok, _, err := jwt.Issue(u.ID)
	require.NoError(t, err)

	w := get(r, "/pharmacy", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. Required role: PHARMACIST")
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("bearer   abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
