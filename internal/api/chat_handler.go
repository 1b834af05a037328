package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepanshu-striker/inter-chat/internal/core"
	"github.com/deepanshu-striker/inter-chat/internal/models"
)

// ChatHandler handles the metered chat endpoint.
type ChatHandler struct {
	chat core.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat core.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /chat. Quota is checked before the agent call and
// consumed only after the agent replied, so a failed agent call is free.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	reply, remaining, err := h.chat.Chat(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		UserID:             req.UserID,
		Response:           reply,
		ResponsesRemaining: remaining,
	})
}
