package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/interface/middleware"
)

type PrescriptionModule struct {
	Handler *handlers.PrescriptionHandler
	Auth    Auth
}

func NewPrescriptionModule(h *handlers.PrescriptionHandler, auth Auth) *PrescriptionModule {
	return &PrescriptionModule{Handler: h, Auth: auth}
}

func (m *PrescriptionModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/prescriptions", m.Auth.Protected()...)
	{
		g.POST("", middleware.WithUser(m.Handler.Create))
		g.GET("", middleware.WithUser(m.Handler.List))
		g.GET("/:id", middleware.WithUser(m.Handler.Get))
		g.PATCH("/:id", middleware.RequireRoles(entity.RolePharmacist), middleware.WithUser(m.Handler.UpdateStatus))
		g.POST("/:id/medicines", middleware.WithUser(m.Handler.AddMedicine))
		g.DELETE("/:id/medicines/:medicineId", middleware.WithUser(m.Handler.RemoveMedicine))
	}
}
