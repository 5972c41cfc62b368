package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/application"
	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/pkg/response"
)

type PrescriptionHandler struct {
	Svc    *application.PrescriptionService
	Logger *logrus.Logger
}

func NewPrescriptionHandler(svc *application.PrescriptionService, logger *logrus.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{Svc: svc, Logger: logger}
}

type medicineRequest struct {
	Name        string  `json:"name" binding:"required,min=1"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

func (m medicineRequest) input() application.MedicineInput {
	return application.MedicineInput{Name: m.Name, Description: m.Description, ImageURL: m.ImageURL}
}

type createPrescriptionRequest struct {
	AppointmentID string            `json:"appointmentId" binding:"required,uuid"`
	Medicines     []medicineRequest `json:"medicines" binding:"required,dive"`
}

type updatePrescriptionRequest struct {
	Status string `json:"status" binding:"required,rxstatus"`
}

func (h *PrescriptionHandler) Create(c *gin.Context, u *entity.User) {
	var req createPrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.CreatePrescriptionInput{AppointmentID: req.AppointmentID}
	for _, m := range req.Medicines {
		in.Medicines = append(in.Medicines, m.input())
	}

	p, err := h.Svc.Create(c.Request.Context(), u, in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) List(c *gin.Context, u *entity.User) {
	list, err := h.Svc.List(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"prescriptions": list})
}

func (h *PrescriptionHandler) Get(c *gin.Context, u *entity.User) {
	p, err := h.Svc.Get(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) UpdateStatus(c *gin.Context, u *entity.User) {
	var req updatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.UpdateStatus(c.Request.Context(), u, c.Param("id"), entity.PrescriptionStatus(req.Status))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"prescription": p})
}

func (h *PrescriptionHandler) AddMedicine(c *gin.Context, u *entity.User) {
	var req medicineRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.AddMedicine(c.Request.Context(), u, c.Param("id"), req.input())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"medicine": m})
}

func (h *PrescriptionHandler) RemoveMedicine(c *gin.Context, u *entity.User) {
	if err := h.Svc.RemoveMedicine(c.Request.Context(), u, c.Param("id"), c.Param("medicineId")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
