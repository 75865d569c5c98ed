package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbase/marketplace/internal/server/http/dto"
)

// ConversationHandler manages message thread endpoints.
type ConversationHandler struct {
	facade ConversationFacade
}

// NewConversationHandler constructs ConversationHandler.
func NewConversationHandler(facade ConversationFacade) *ConversationHandler {
	return &ConversationHandler{facade: facade}
}

// Create handles POST /api/v2/conversation/create-new-conversation.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req dto.CreateConversationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	conv, created, err := h.facade.OpenConversation(c.Request.Context(), req.GroupTitle, req.UserID, req.SellerID)
	if err != nil {
		renderError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ConversationResponse{Success: true, Conversation: dto.NewConversationPayload(conv)})
}

// ListForSeller handles GET /api/v2/conversation/get-all-conversation-seller/:id.
func (h *ConversationHandler) ListForSeller(c *gin.Context) {
	h.list(c, c.Param("id"))
}

// ListForUser handles GET /api/v2/conversation/get-all-conversation-user/:id.
func (h *ConversationHandler) ListForUser(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *ConversationHandler) list(c *gin.Context, memberID string) {
	conversations, err := h.facade.ConversationsForMember(c.Request.Context(), memberID)
	if err != nil {
		renderError(c, err)
		return
	}

	resp := dto.ConversationListResponse{Success: true, Conversations: make([]dto.ConversationPayload, 0, len(conversations))}
	for i := range conversations {
		resp.Conversations = append(resp.Conversations, dto.NewConversationPayload(&conversations[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLastMessage handles PUT /api/v2/conversation/update-last-message/:id.
func (h *ConversationHandler) UpdateLastMessage(c *gin.Context) {
	var req dto.UpdateLastMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	conv, err := h.facade.RefreshLastMessage(c.Request.Context(), c.Param("id"), req.LastMessage, req.LastMessageID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConversationResponse{Success: true, Conversation: dto.NewConversationPayload(conv)})
}
