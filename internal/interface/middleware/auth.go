package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/pkg/helpers"
	"github.com/oksasatya/medico-api/pkg/response"
)

// ctxUserKey is unexported so only this package can attach the user.
const ctxUserKey = "medico.auth.user"

// Authenticate resolves the bearer token to a stored user and attaches it
// to the request. Every failure short of a store error is a 401.
func Authenticate(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		userID, err := jwt.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Error(c, http.StatusUnauthorized, "User not found", nil)
				return
			}
			helpers.LogError(logger, "load authenticated user", err, logrus.Fields{
				"user_id":    userID,
				"request_id": c.GetString(RequestIDKey),
			})
			response.Error(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// WithUser adapts a handler that needs the authenticated user. Handlers
// wrapped this way never observe a nil user.
func WithUser(h func(c *gin.Context, u *entity.User)) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		h(c, u)
	}
}

// RequireRoles lets the request through only for the listed roles.
// It must run after Authenticate.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
		names = append(names, string(r))
	}
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		if _, ok := allowed[u.Role]; !ok {
			response.Error(c, http.StatusForbidden,
				"Access denied. Required role: "+strings.Join(names, " or "), nil)
			return
		}
		c.Next()
	}
}
