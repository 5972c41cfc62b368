package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
)

type ChatModule struct {
	Handler *handlers.ChatHandler
	Auth    Auth
}

func NewChatModule(h *handlers.ChatHandler, auth Auth) *ChatModule {
	return &ChatModule{Handler: h, Auth: auth}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/chat", m.Auth.Protected()...)
	{
		g.GET("/conversations", middleware.WithUser(m.Handler.Conversations))
		g.GET("/:conversationId/messages", middleware.WithUser(m.Handler.Messages))
		g.POST("/send", middleware.WithUser(m.Handler.Send))
	}
}
