package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/internal/application"
	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/pkg/response"
)

type ChatHandler struct {
	Svc    *application.ChatService
	Logger *logrus.Logger
}

func NewChatHandler(svc *application.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

type sendMessageRequest struct {
	Content    string `json:"content" binding:"required,min=1,max=4000"`
	ReceiverID string `json:"receiverId" binding:"required,uuid"`
}

func (h *ChatHandler) Conversations(c *gin.Context, u *entity.User) {
	list, err := h.Svc.Conversations(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"conversations": list})
}

func (h *ChatHandler) Messages(c *gin.Context, u *entity.User) {
	list, err := h.Svc.Messages(c.Request.Context(), u, c.Param("conversationId"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"messages": list})
}

func (h *ChatHandler) Send(c *gin.Context, u *entity.User) {
	var req sendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Svc.Send(c.Request.Context(), u, req.ReceiverID, req.Content)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    m,
	})
}
