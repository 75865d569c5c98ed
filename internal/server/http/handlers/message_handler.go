package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbase/marketplace/internal/server/http/dto"
)

// MessageHandler manages message endpoints.
type MessageHandler struct {
	facade MessageFacade
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(facade MessageFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// Create handles POST /api/v2/message/create-new-message.
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	msg, err := h.facade.SendMessage(c.Request.Context(), req.ConversationID, req.Sender, req.Text, req.Images)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedMessageResponse{Success: true, Message: dto.NewMessagePayload(msg)})
}

// List handles GET /api/v2/message/get-all-messages/:id.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.facade.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	resp := dto.MessageListResponse{Success: true, Messages: make([]dto.MessagePayload, 0, len(messages))}
	for i := range messages {
		resp.Messages = append(resp.Messages, dto.NewMessagePayload(&messages[i]))
	}
	c.JSON(http.StatusOK, resp)
}
