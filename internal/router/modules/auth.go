package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

// Auth carries what every protected module needs to guard its routes.
type Auth struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

// Protected returns the authentication chain plus a per-user limiter.
func (a Auth) Protected() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Authenticate(a.Users, a.JWT, a.Logger),
		middleware.RateLimit(a.Redis, 300, time.Minute, middleware.KeyByUser()),
	}
}
