package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Auth    Auth
}

func NewNotificationModule(h *handlers.NotificationHandler, auth Auth) *NotificationModule {
	return &NotificationModule{Handler: h, Auth: auth}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications", m.Auth.Protected()...)
	{
		g.GET("", middleware.WithUser(m.Handler.List))
		g.GET("/stream", middleware.WithUser(m.Handler.Stream))
		g.PATCH("/read-all", middleware.WithUser(m.Handler.MarkAllRead))
		g.PATCH("/:id/read", middleware.WithUser(m.Handler.MarkRead))
	}
}
