package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
)

type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	Auth    Auth
}

func NewAppointmentModule(h *handlers.AppointmentHandler, auth Auth) *AppointmentModule {
	return &AppointmentModule{Handler: h, Auth: auth}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/appointments", m.Auth.Protected()...)
	{
		g.POST("", middleware.WithUser(m.Handler.Create))
		g.GET("", middleware.WithUser(m.Handler.List))
		g.GET("/doctor/schedule", middleware.RequireRoles(entity.RoleDoctor), middleware.WithUser(m.Handler.Schedule))
		g.GET("/:id", middleware.WithUser(m.Handler.Get))
		g.PATCH("/:id", middleware.WithUser(m.Handler.UpdateStatus))
	}
}
