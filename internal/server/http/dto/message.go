package dto

import (
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// CreateMessageRequest describes the message creation payload. Images
// carries an optional data URI uploaded to the object store.
type CreateMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Sender         string `json:"sender" validate:"required"`
	Text           string `json:"text"`
	Images         string `json:"images"`
}

// AttachmentPayload mirrors a stored image reference.
type AttachmentPayload struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// MessagePayload mirrors a message on the wire.
type MessagePayload struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversationId"`
	Sender         string             `json:"sender"`
	Text           string             `json:"text,omitempty"`
	Images         *AttachmentPayload `json:"images,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewMessagePayload converts the domain message.
func NewMessagePayload(m *model.Message) MessagePayload {
	payload := MessagePayload{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         m.Sender,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	}
	if m.Image != nil {
		payload.Images = &AttachmentPayload{PublicID: m.Image.PublicID, URL: m.Image.URL}
	}
	return payload
}

// CreatedMessageResponse wraps a freshly stored message.
type CreatedMessageResponse struct {
	Success bool           `json:"success"`
	Message MessagePayload `json:"message"`
}

// MessageListResponse wraps a thread's history.
type MessageListResponse struct {
	Success  bool             `json:"success"`
	Messages []MessagePayload `json:"messages"`
}
