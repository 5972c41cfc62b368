package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/application"
	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/pkg/response"
)

// streamHeartbeat keeps idle SSE connections open through proxies.
const streamHeartbeat = 25 * time.Second

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List answers with a bare JSON array, newest first.
func (h *NotificationHandler) List(c *gin.Context, u *entity.User) {
	list, err := h.Svc.List(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *NotificationHandler) MarkRead(c *gin.Context, u *entity.User) {
	if err := h.Svc.MarkRead(c.Request.Context(), u, c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context, u *entity.User) {
	n, err := h.Svc.MarkAllRead(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true, "updated": n})
}

// Stream pushes one "notification" event per dispatched notification until
// the client goes away.
func (h *NotificationHandler) Stream(c *gin.Context, u *entity.User) {
	ch, err := h.Svc.Stream(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"userId": u.ID})
	c.Writer.Flush()

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
