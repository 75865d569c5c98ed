package dto

import (
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// CreateConversationRequest describes the thread creation payload.
type CreateConversationRequest struct {
	GroupTitle string `json:"groupTitle" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
	SellerID   string `json:"sellerId" validate:"required"`
}

// UpdateLastMessageRequest describes the thread preview update payload.
type UpdateLastMessageRequest struct {
	LastMessage   string `json:"lastMessage" validate:"required"`
	LastMessageID string `json:"lastMessageId" validate:"required"`
}

// ConversationPayload mirrors a conversation on the wire.
type ConversationPayload struct {
	ID            string    `json:"id"`
	GroupTitle    string    `json:"groupTitle"`
	Members       []string  `json:"members"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	LastMessageID string    `json:"lastMessageId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewConversationPayload converts the domain conversation.
func NewConversationPayload(c *model.Conversation) ConversationPayload {
	return ConversationPayload{
		ID:            c.ID,
		GroupTitle:    c.GroupTitle,
		Members:       c.Members,
		LastMessage:   c.LastMessage,
		LastMessageID: c.LastMessageID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ConversationResponse wraps a single thread.
type ConversationResponse struct {
	Success      bool                `json:"success"`
	Conversation ConversationPayload `json:"conversation"`
}

// ConversationListResponse wraps a member's threads.
type ConversationListResponse struct {
	Success       bool                  `json:"success"`
	Conversations []ConversationPayload `json:"conversations"`
}
