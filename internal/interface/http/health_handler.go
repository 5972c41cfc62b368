package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/pkg/response"
)

// PingFunc checks one backend.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	Ping   PingFunc
	Logger *logrus.Logger
}

func NewHealthHandler(ping PingFunc, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Ping: ping, Logger: logger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health check failed")
			}
			response.JSON(c, http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().UTC(),
			})
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}
