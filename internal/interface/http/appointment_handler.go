package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/application"
	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/pkg/response"
)

type AppointmentHandler struct {
	Svc    *application.AppointmentService
	Logger *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

type createAppointmentRequest struct {
	Date           string   `json:"date" binding:"required"`
	Complaint      string   `json:"complaint" binding:"required,min=1"`
	MedicalHistory string   `json:"medicalHistory"`
	DoctorID       string   `json:"doctorId" binding:"required,uuid"`
	Payment        *float64 `json:"payment" binding:"omitempty,gte=0"`
}

type updateAppointmentRequest struct {
	Status string `json:"status" binding:"required,apptstatus"`
}

func (h *AppointmentHandler) Create(c *gin.Context, u *entity.User) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid request payload",
			map[string]string{"date": "must be an RFC 3339 timestamp or YYYY-MM-DD"})
		return
	}

	a, err := h.Svc.Create(c.Request.Context(), u, application.CreateAppointmentInput{
		Date:           date,
		Complaint:      req.Complaint,
		MedicalHistory: req.MedicalHistory,
		DoctorID:       req.DoctorID,
		Payment:        req.Payment,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"appointment": a})
}

func (h *AppointmentHandler) List(c *gin.Context, u *entity.User) {
	list, err := h.Svc.List(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"appointments": list})
}

func (h *AppointmentHandler) Get(c *gin.Context, u *entity.User) {
	a, err := h.Svc.Get(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context, u *entity.User) {
	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.UpdateStatus(c.Request.Context(), u, c.Param("id"), entity.AppointmentStatus(req.Status))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *AppointmentHandler) Schedule(c *gin.Context, u *entity.User) {
	list, err := h.Svc.Schedule(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"schedule": list})
}
