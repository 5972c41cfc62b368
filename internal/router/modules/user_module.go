package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
)

// UserModule serves /api/users.
// Public: POST /register, POST /login
// Protected: GET|PATCH /profile, POST /profile/avatar, GET /doctors
type UserModule struct {
	Handler    *handlers.UserHandler
	Auth       Auth
	LoginLimit int
}

func NewUserModule(h *handlers.UserHandler, auth Auth, loginLimit int) *UserModule {
	return &UserModule{Handler: h, Auth: auth, LoginLimit: loginLimit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	loginLimiter := middleware.RateLimit(m.Auth.Redis, m.LoginLimit, time.Minute, middleware.KeyByIPAndPath())
	registerLimiter := middleware.RateLimit(m.Auth.Redis, 30, time.Minute, middleware.KeyByIPAndPath())
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)

	auth := users.Group("/", m.Auth.Protected()...)
	{
		auth.GET("/profile", middleware.WithUser(m.Handler.GetProfile))
		auth.PATCH("/profile", middleware.WithUser(m.Handler.UpdateProfile))
		auth.POST("/profile/avatar", middleware.WithUser(m.Handler.UploadAvatar))
		auth.GET("/doctors", middleware.WithUser(m.Handler.ListDoctors))
	}
}
